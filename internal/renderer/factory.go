package renderer

import (
	"go.uber.org/zap"

	"github.com/kjkrol/gokl/internal/config"
	"github.com/kjkrol/gokl/pkg/gfx"
	"github.com/kjkrol/gokl/pkg/scene"
)

// NewRendererFactory builds a SceneRenderer once the window's GL context is
// current. ready, when set, receives the renderer after a successful init.
func NewRendererFactory(conf *config.Config, s *scene.Scene, source FrameSource, logger *zap.Logger, ready func(*SceneRenderer)) gfx.RendererFactory {
	return func(_ *gfx.Window) (gfx.Renderer, error) {
		r := newRenderer(conf, s, source, logger)
		if err := r.ensureInit(); err != nil {
			r.Close()
			return nil, err
		}
		if ready != nil {
			ready(r)
		}
		return r, nil
	}
}
