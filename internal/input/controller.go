// Package input turns window events into camera and flashlight state.
package input

import (
	"time"

	"go.uber.org/zap"

	"github.com/kjkrol/gokl/pkg/gfx"
	"github.com/kjkrol/gokl/pkg/scene"
)

// Window is the part of gfx.Window the controller drives.
type Window interface {
	Stop()
	SetCursorCaptured(captured bool)
	CursorCaptured() bool
}

const leftButton = 1

var moveKeys = map[string]scene.Direction{
	"w":     scene.Forward,
	"Up":    scene.Forward,
	"s":     scene.Backward,
	"Down":  scene.Backward,
	"a":     scene.Left,
	"Left":  scene.Left,
	"d":     scene.Right,
	"Right": scene.Right,
}

var directions = []scene.Direction{scene.Forward, scene.Backward, scene.Left, scene.Right}

type Controller struct {
	scene  *scene.Scene
	camera *scene.Camera
	window Window
	logger *zap.Logger

	held        map[string]bool
	flashlight  bool
	lastX       float64
	lastY       float64
	firstMotion bool
}

func New(s *scene.Scene, window Window, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		scene:       s,
		camera:      s.NewCamera(),
		window:      window,
		logger:      logger,
		held:        make(map[string]bool),
		flashlight:  s.Flashlight.On,
		firstMotion: true,
	}
}

func (c *Controller) Camera() *scene.Camera {
	return c.camera
}

func (c *Controller) Flashlight() bool {
	return c.flashlight
}

func (c *Controller) Handle(event gfx.Event) {
	switch e := event.(type) {
	case gfx.KeyPress:
		c.keyPress(e)
	case gfx.KeyRelease:
		delete(c.held, e.Label)
	case gfx.ButtonPress:
		if e.Button == leftButton && !c.window.CursorCaptured() {
			c.window.SetCursorCaptured(true)
			c.firstMotion = true
		}
	case gfx.MotionNotify:
		c.motion(e.X, e.Y)
	case gfx.MouseWheel:
		c.camera.ZoomBy(float32(e.DeltaY))
	case gfx.LeaveNotify:
		c.firstMotion = true
	case gfx.DestroyNotify:
		c.window.Stop()
	}
}

func (c *Controller) keyPress(e gfx.KeyPress) {
	switch e.Label {
	case "Escape":
		c.window.Stop()
	case "f":
		if e.Repeat {
			return
		}
		c.flashlight = !c.flashlight
		c.logger.Debug("flashlight toggled", zap.Bool("on", c.flashlight))
	default:
		if _, ok := moveKeys[e.Label]; ok {
			c.held[e.Label] = true
		}
	}
}

func (c *Controller) motion(x, y float64) {
	if !c.window.CursorCaptured() {
		return
	}
	if c.firstMotion {
		c.lastX, c.lastY = x, y
		c.firstMotion = false
		return
	}
	// Screen y grows downwards, pitch grows upwards.
	dx := float32(x - c.lastX)
	dy := float32(c.lastY - y)
	c.lastX, c.lastY = x, y
	c.camera.Look(dx, dy, true)
}

// Frame moves the camera for every held movement key and returns the
// per-frame matrices.
func (c *Controller) Frame(dt time.Duration, aspect float32) scene.Frame {
	seconds := float32(dt.Seconds())
	for _, dir := range directions {
		if c.moving(dir) {
			c.camera.Move(dir, seconds)
		}
	}
	return c.scene.NewFrame(c.camera, aspect, c.flashlight)
}

func (c *Controller) moving(dir scene.Direction) bool {
	for label := range c.held {
		if moveKeys[label] == dir {
			return true
		}
	}
	return false
}
