package platform

type Event interface{}

type KeyPress struct {
	Code   uint64
	Label  string
	Repeat bool
}
type KeyRelease struct {
	Code  uint64
	Label string
}
type ButtonPress struct {
	Button uint32
	X, Y   int
}
type ButtonRelease struct {
	Button uint32
	X, Y   int
}
type MotionNotify struct {
	X, Y float64
}
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
}
type Resize struct {
	Width, Height int
}
type EnterNotify struct{}
type LeaveNotify struct{}
type DestroyNotify struct{}
type TimeoutEvent struct{}
