package gfx

import (
	"runtime"
	"time"

	"github.com/kjkrol/gokl/internal/platform"
)

// ListenEvents runs the frame loop until Stop is called. Events are handed
// to handleEvent as they arrive; frames are rendered at the configured rate.
func (w *Window) ListenEvents(handleEvent func(event Event), strategy EventsConsumerStrategy) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if strategy == nil {
		strategy = DrainAll()
	}
	handle := func(event Event) {
		if e, ok := event.(Resize); ok {
			w.width, w.height = e.Width, e.Height
		}
		if handleEvent != nil {
			handleEvent(event)
		}
	}
	poll := func(timeoutMs int) (Event, bool) {
		platformEvent := w.platformWinWrapper.NextEventTimeout(timeoutMs)
		if _, ok := platformEvent.(platform.TimeoutEvent); ok {
			return nil, false
		}
		return convert(platformEvent), true
	}

	for {
		select {
		case <-w.ctx.Done():
			w.wg.Wait()
			return
		default:
			strategy.Consume(poll, handle, w.clock.timeoutMs(time.Now()))

			dt, due := w.clock.tick(time.Now())
			if !due {
				continue
			}
			w.runUpdates()
			w.renderFrame(dt)
		}
	}
}

func (w *Window) runUpdates() {
	for {
		select {
		case upd := <-w.updates:
			upd()
		default:
			return
		}
	}
}

func (w *Window) renderFrame(dt time.Duration) {
	w.platformWinWrapper.BeginFrame()
	if w.renderer != nil {
		w.renderer.Render(w, dt)
	}
	w.platformWinWrapper.EndFrame()
}
