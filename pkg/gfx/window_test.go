package gfx

import (
	"context"
	"testing"
	"time"

	"github.com/kjkrol/gokl/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWrapper struct {
	events   []platform.Event
	frames   int
	closed   int
	captured bool
	width    int
	height   int
}

func (f *fakeWrapper) Show()  {}
func (f *fakeWrapper) Close() { f.closed++ }
func (f *fakeWrapper) NextEventTimeout(int) platform.Event {
	if len(f.events) == 0 {
		return platform.TimeoutEvent{}
	}
	e := f.events[0]
	f.events = f.events[1:]
	return e
}
func (f *fakeWrapper) BeginFrame()                     {}
func (f *fakeWrapper) EndFrame()                       { f.frames++ }
func (f *fakeWrapper) FramebufferSize() (int, int)     { return f.width, f.height }
func (f *fakeWrapper) SetCursorCaptured(captured bool) { f.captured = captured }
func (f *fakeWrapper) CursorCaptured() bool            { return f.captured }

type recordingRenderer struct {
	frames []time.Duration
	onDraw func(w *Window)
	closed int
}

func (r *recordingRenderer) Render(w *Window, dt time.Duration) {
	r.frames = append(r.frames, dt)
	if r.onDraw != nil {
		r.onDraw(w)
	}
}

func (r *recordingRenderer) Close() { r.closed++ }

func TestListenEventsDispatchesAndRenders(t *testing.T) {
	wrapper := &fakeWrapper{
		width:  800,
		height: 600,
		events: []platform.Event{
			platform.KeyPress{Code: 87, Label: "w"},
			platform.Resize{Width: 400, Height: 100},
		},
	}
	w := newWindow(wrapper, 1000)
	renderer := &recordingRenderer{}
	renderer.onDraw = func(w *Window) {
		if len(renderer.frames) == 3 {
			w.Stop()
		}
	}
	w.setRenderer(renderer)

	var got []Event
	w.ListenEvents(func(e Event) { got = append(got, e) }, nil)

	require.Len(t, got, 2)
	assert.Equal(t, KeyPress{Code: 87, Label: "w"}, got[0])
	assert.Equal(t, Resize{Width: 400, Height: 100}, got[1])
	width, height := w.Size()
	assert.Equal(t, 400, width)
	assert.Equal(t, 100, height)
	assert.InDelta(t, 4.0, w.Aspect(), 1e-6)
	assert.Equal(t, 3, wrapper.frames)
	assert.Len(t, renderer.frames, 3)
}

func TestPostRunsBeforeNextFrame(t *testing.T) {
	w := newWindow(&fakeWrapper{width: 1, height: 1}, 1000)
	var order []string
	renderer := &recordingRenderer{}
	renderer.onDraw = func(w *Window) {
		order = append(order, "render")
		w.Stop()
	}
	w.setRenderer(renderer)

	require.True(t, w.Post(func() { order = append(order, "update") }))
	w.ListenEvents(nil, DrainAll())

	assert.Equal(t, []string{"update", "render"}, order)
	assert.False(t, w.Post(func() {}))
}

func TestGoTasksAreJoinedOnStop(t *testing.T) {
	w := newWindow(&fakeWrapper{width: 1, height: 1}, 1000)
	finished := make(chan struct{})
	w.Go(func(ctx context.Context) {
		<-ctx.Done()
		close(finished)
	})
	renderer := &recordingRenderer{onDraw: func(w *Window) { w.Stop() }}
	w.setRenderer(renderer)

	w.ListenEvents(nil, nil)

	select {
	case <-finished:
	default:
		t.Fatal("background task still running after ListenEvents returned")
	}
}

func TestCloseReleasesRendererAndWrapperOnce(t *testing.T) {
	wrapper := &fakeWrapper{width: 1, height: 1}
	w := newWindow(wrapper, 0)
	renderer := &recordingRenderer{}
	w.setRenderer(renderer)

	w.Close()
	w.Close()

	assert.Equal(t, 1, renderer.closed)
	assert.Equal(t, 1, wrapper.closed)
}

func TestAspectOfMinimizedWindow(t *testing.T) {
	w := newWindow(&fakeWrapper{}, 0)
	assert.Equal(t, float32(1), w.Aspect())
}

func TestCursorCapture(t *testing.T) {
	w := newWindow(&fakeWrapper{width: 1, height: 1}, 0)
	w.SetCursorCaptured(true)
	assert.True(t, w.CursorCaptured())
}
