package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kjkrol/gokl/internal/config"
	"github.com/kjkrol/gokl/internal/glbackend"
	"github.com/kjkrol/gokl/internal/platform"
	"github.com/kjkrol/gokl/pkg/shader"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Build every configured shader program offscreen and report diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			return checkShaders(cmd, cfg, log)
		},
	}
}

func checkShaders(cmd *cobra.Command, cfg *config.Config, log *zap.Logger) error {
	offscreen, err := platform.NewOffscreenContext(64, 64)
	if err != nil {
		return fmt.Errorf("offscreen context: %w", err)
	}
	defer offscreen.Close()

	backend, err := glbackend.Init()
	if err != nil {
		return err
	}
	log.Debug("checking shaders", zap.String("gl", glbackend.Version()))
	builder := shader.NewBuilder(backend, shader.WithLogger(log.Named("shader")))

	programs := []struct {
		name  string
		paths config.ProgramPaths
	}{
		{"box", cfg.Shaders.Box},
		{"light", cfg.Shaders.Light},
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	failed := 0
	for _, p := range programs {
		program, err := builder.Build(p.paths.Vertex, p.paths.Fragment)
		if err != nil {
			failed++
			fmt.Fprintf(errOut, "FAIL %s (%s, %s)\n%v\n", p.name, p.paths.Vertex, p.paths.Fragment, err)
			continue
		}
		program.Delete()
		fmt.Fprintf(out, "ok   %s\n", p.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d shader programs failed to build", failed, len(programs))
	}
	return nil
}
