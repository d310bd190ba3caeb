package platform

type WindowConfig struct {
	PositionX     int
	PositionY     int
	Width         int
	Height        int
	Title         string
	VSync         bool
	CaptureCursor bool
}

type PlatformWindowWrapper interface {
	Show()
	Close()
	// NextEventTimeout returns the next queued input event, waiting at most
	// timeoutMs for one to arrive. It returns TimeoutEvent when none did.
	NextEventTimeout(timeoutMs int) Event
	BeginFrame()
	EndFrame()
	FramebufferSize() (int, int)
	SetCursorCaptured(captured bool)
	CursorCaptured() bool
}
