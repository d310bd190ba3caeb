package gfx

import "time"

// Renderer draws one frame. It is only ever called on the window's render
// thread with the window's GL context current.
type Renderer interface {
	Render(w *Window, dt time.Duration)
	Close()
}

// RendererFactory is called once the window's GL context is current, so a
// renderer may load GL state eagerly and report failures.
type RendererFactory func(w *Window) (Renderer, error)
