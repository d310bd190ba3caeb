package renderer

import (
	"time"

	"github.com/kjkrol/gokl/pkg/scene"
)

// FrameSource produces the camera state for the next frame. dt is the time
// since the previous frame.
type FrameSource interface {
	Frame(dt time.Duration, aspect float32) scene.Frame
}

type FrameSourceFunc func(dt time.Duration, aspect float32) scene.Frame

func (f FrameSourceFunc) Frame(dt time.Duration, aspect float32) scene.Frame {
	return f(dt, aspect)
}
