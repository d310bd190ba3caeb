package gfx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kjkrol/gokl/internal/platform"
)

type WindowConfig struct {
	PositionX     int
	PositionY     int
	Width         int
	Height        int
	Title         string
	VSync         bool
	CaptureCursor bool
	FPS           int
}

func (w WindowConfig) convert() platform.WindowConfig {
	return platform.WindowConfig{
		PositionX:     w.PositionX,
		PositionY:     w.PositionY,
		Width:         w.Width,
		Height:        w.Height,
		Title:         w.Title,
		VSync:         w.VSync,
		CaptureCursor: w.CaptureCursor,
	}
}

type Window struct {
	platformWinWrapper platform.PlatformWindowWrapper
	renderer           Renderer
	clock              *frameClock
	width              int
	height             int
	wg                 sync.WaitGroup
	ctx                context.Context
	cancel             context.CancelFunc
	closed             bool

	updates chan func()
}

// NewWindow opens a platform window and makes its GL context current on the
// calling goroutine's OS thread. ListenEvents must run on the same goroutine.
func NewWindow(conf WindowConfig, factory RendererFactory) (*Window, error) {
	wrapper, err := platform.NewPlatformWindowWrapper(conf.convert())
	if err != nil {
		return nil, fmt.Errorf("open window: %w", err)
	}
	window := newWindow(wrapper, conf.FPS)
	if factory != nil {
		renderer, err := factory(window)
		if err != nil {
			window.Close()
			return nil, err
		}
		window.setRenderer(renderer)
	}
	return window, nil
}

func newWindow(wrapper platform.PlatformWindowWrapper, fps int) *Window {
	if wrapper == nil {
		panic("platform window wrapper is required")
	}
	window := &Window{
		platformWinWrapper: wrapper,
		clock:              newFrameClock(fps, time.Now()),
		updates:            make(chan func(), 1024),
	}
	window.width, window.height = wrapper.FramebufferSize()
	window.ctx, window.cancel = context.WithCancel(context.Background())
	return window
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	if w == nil {
		return 0, 0
	}
	return w.width, w.height
}

// Aspect is width over height, or 1 while the window is minimized.
func (w *Window) Aspect() float32 {
	if w == nil || w.width <= 0 || w.height <= 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

func (w *Window) Show() {
	w.platformWinWrapper.Show()
}

func (w *Window) Stop() {
	w.cancel()
}

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.cancel()
	if w.renderer != nil {
		w.renderer.Close()
		w.renderer = nil
	}
	w.platformWinWrapper.Close()
}

func (w *Window) setRenderer(renderer Renderer) {
	if w == nil {
		return
	}
	if w.renderer != nil {
		w.renderer.Close()
	}
	w.renderer = renderer
}

func (w *Window) SetCursorCaptured(captured bool) {
	w.platformWinWrapper.SetCursorCaptured(captured)
}

func (w *Window) CursorCaptured() bool {
	return w.platformWinWrapper.CursorCaptured()
}

// Post queues fn to run on the render thread before the next frame. It is
// safe to call from any goroutine and reports false once the window has
// stopped.
func (w *Window) Post(fn func()) bool {
	select {
	case <-w.ctx.Done():
		return false
	default:
	}
	select {
	case w.updates <- fn:
		return true
	case <-w.ctx.Done():
		return false
	}
}

// Go runs task in a background goroutine. ListenEvents waits for every such
// task to return after the window stops.
func (w *Window) Go(task func(ctx context.Context)) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		task(w.ctx)
	}()
}
