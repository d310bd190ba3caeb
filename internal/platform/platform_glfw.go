package platform

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	glfwMu    sync.Mutex
	glfwUsers int
)

func acquireGLFW() error {
	glfwMu.Lock()
	defer glfwMu.Unlock()
	if glfwUsers == 0 {
		if err := glfw.Init(); err != nil {
			return fmt.Errorf("glfw.Init error: %w", err)
		}
	}
	glfwUsers++
	return nil
}

func releaseGLFW() {
	glfwMu.Lock()
	defer glfwMu.Unlock()
	glfwUsers--
	if glfwUsers == 0 {
		glfw.Terminate()
	}
}

type glfwWindowWrapper struct {
	window   *glfw.Window
	queue    []Event
	captured bool
	closed   bool
}

// NewPlatformWindowWrapper opens a window with a current OpenGL 3.3 core
// context. The calling goroutine must stay locked to its OS thread for as
// long as the window lives.
func NewPlatformWindowWrapper(conf WindowConfig) (PlatformWindowWrapper, error) {
	return newGLFWWindow(conf)
}

func newGLFWWindow(conf WindowConfig) (*glfwWindowWrapper, error) {
	runtime.LockOSThread()
	if err := acquireGLFW(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		releaseGLFW()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw.CreateWindow error: %w", err)
	}
	if conf.PositionX != 0 || conf.PositionY != 0 {
		window.SetPos(conf.PositionX, conf.PositionY)
	}
	window.MakeContextCurrent()
	if conf.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindowWrapper{window: window}
	w.installCallbacks()
	if conf.CaptureCursor {
		w.SetCursorCaptured(true)
	}
	return w, nil
}

func (w *glfwWindowWrapper) installCallbacks() {
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		label := keyLabel(key, scancode)
		switch action {
		case glfw.Press:
			w.push(KeyPress{Code: uint64(key), Label: label})
		case glfw.Repeat:
			w.push(KeyPress{Code: uint64(key), Label: label, Repeat: true})
		case glfw.Release:
			w.push(KeyRelease{Code: uint64(key), Label: label})
		}
	})
	w.window.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		// GLFW counts buttons from 0, X11 from 1.
		b := uint32(button) + 1
		if action == glfw.Press {
			w.push(ButtonPress{Button: b, X: int(x), Y: int(y)})
		} else {
			w.push(ButtonRelease{Button: b, X: int(x), Y: int(y)})
		}
	})
	w.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(MotionNotify{X: x, Y: y})
	})
	w.window.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.push(MouseWheel{DeltaX: dx, DeltaY: dy})
	})
	w.window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			w.push(EnterNotify{})
		} else {
			w.push(LeaveNotify{})
		}
	})
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(Resize{Width: width, Height: height})
	})
	w.window.SetCloseCallback(func(_ *glfw.Window) {
		w.push(DestroyNotify{})
	})
}

func (w *glfwWindowWrapper) push(e Event) {
	w.queue = append(w.queue, e)
}

func (w *glfwWindowWrapper) pop() (Event, bool) {
	if len(w.queue) == 0 {
		return nil, false
	}
	e := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return e, true
}

func (w *glfwWindowWrapper) Show() {
	w.window.Show()
}

func (w *glfwWindowWrapper) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.window.Destroy()
	releaseGLFW()
	runtime.UnlockOSThread()
}

func (w *glfwWindowWrapper) NextEventTimeout(timeoutMs int) Event {
	if e, ok := w.pop(); ok {
		return e
	}
	if timeoutMs <= 0 {
		glfw.PollEvents()
	} else {
		glfw.WaitEventsTimeout(float64(timeoutMs) / 1000)
	}
	if e, ok := w.pop(); ok {
		return e
	}
	return TimeoutEvent{}
}

func (w *glfwWindowWrapper) BeginFrame() {
	w.window.MakeContextCurrent()
}

func (w *glfwWindowWrapper) EndFrame() {
	w.window.SwapBuffers()
}

func (w *glfwWindowWrapper) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindowWrapper) SetCursorCaptured(captured bool) {
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	w.window.SetInputMode(glfw.CursorMode, mode)
	w.captured = captured
}

func (w *glfwWindowWrapper) CursorCaptured() bool {
	return w.captured
}

// NewOffscreenContext gives the calling thread a current GL context backed
// by a window that is never shown.
func NewOffscreenContext(width, height int) (PlatformWindowWrapper, error) {
	return newGLFWWindow(WindowConfig{Width: width, Height: height, Title: "offscreen"})
}

var keyLabels = map[glfw.Key]string{
	glfw.KeyEscape:       "Escape",
	glfw.KeySpace:        "Space",
	glfw.KeyEnter:        "Return",
	glfw.KeyTab:          "Tab",
	glfw.KeyBackspace:    "BackSpace",
	glfw.KeyUp:           "Up",
	glfw.KeyDown:         "Down",
	glfw.KeyLeft:         "Left",
	glfw.KeyRight:        "Right",
	glfw.KeyLeftShift:    "Shift_L",
	glfw.KeyRightShift:   "Shift_R",
	glfw.KeyLeftControl:  "Control_L",
	glfw.KeyRightControl: "Control_R",
}

func keyLabel(key glfw.Key, scancode int) string {
	if label, ok := keyLabels[key]; ok {
		return label
	}
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		return string(rune('a' + (key - glfw.KeyA)))
	}
	if key >= glfw.Key0 && key <= glfw.Key9 {
		return string(rune('0' + (key - glfw.Key0)))
	}
	return glfw.GetKeyName(key, scancode)
}
