package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kjkrol/gokl/internal/config"
	"github.com/kjkrol/gokl/internal/input"
	"github.com/kjkrol/gokl/internal/renderer"
	"github.com/kjkrol/gokl/internal/watch"
	"github.com/kjkrol/gokl/pkg/gfx"
	"github.com/kjkrol/gokl/pkg/scene"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the window and render the scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScene(cmd, opts)
		},
	}
}

func runScene(cmd *cobra.Command, opts *options) error {
	cfg, log, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	s := cfg.SceneDefinition()
	var (
		controller    *input.Controller
		sceneRenderer *renderer.SceneRenderer
	)
	source := renderer.FrameSourceFunc(func(dt time.Duration, aspect float32) scene.Frame {
		return controller.Frame(dt, aspect)
	})
	factory := renderer.NewRendererFactory(cfg, s, source, log.Named("renderer"), func(r *renderer.SceneRenderer) {
		sceneRenderer = r
	})

	window, err := gfx.NewWindow(windowConfig(cfg), factory)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer window.Close()

	controller = input.New(s, window, log.Named("input"))
	if cfg.Watch {
		if err := watchShaders(window, sceneRenderer, cfg.ShaderFiles(), log.Named("watch")); err != nil {
			log.Warn("shader hot reload disabled", zap.Error(err))
		}
	}

	log.Info("rendering",
		zap.Int("boxes", len(s.Boxes)),
		zap.Int("point_lights", len(s.PointLights)),
		zap.Bool("watch", cfg.Watch))
	window.Show()
	window.ListenEvents(controller.Handle, gfx.DrainAll())
	return nil
}

func windowConfig(cfg *config.Config) gfx.WindowConfig {
	return gfx.WindowConfig{
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Title:         cfg.Window.Title,
		VSync:         cfg.Window.VSync,
		CaptureCursor: cfg.Window.CaptureCursor,
		FPS:           cfg.Window.FPS,
	}
}

// watchShaders rebuilds programs on the render thread whenever one of their
// source files changes.
func watchShaders(window *gfx.Window, r *renderer.SceneRenderer, files []string, log *zap.Logger) error {
	watcher, err := watch.New(log, files...)
	if err != nil {
		return err
	}
	window.Go(func(ctx context.Context) {
		defer watcher.Close()
		watcher.Run(ctx, func(path string) {
			window.Post(func() {
				// Failures are logged by the renderer and the old program stays.
				_ = r.Reload(path)
			})
		})
	})
	return nil
}
