package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kjkrol/gokl/internal/config"
	"github.com/kjkrol/gokl/internal/logger"
)

type options struct {
	configPath  string
	logLevel    string
	watch       bool
	development bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "gokl",
		Short:        "Lit-cube OpenGL scene with hot-reloadable shaders",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScene(cmd, opts)
		},
	}
	bindFlags(root.PersistentFlags(), opts)
	root.AddCommand(newRunCmd(opts), newCheckCmd(opts))
	return root
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML or YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.watch, "watch", false, "rebuild shaders when their files change")
	flags.BoolVar(&opts.development, "dev", false, "development logging")
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, opts *options) (*config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = opts.watch
	}
	log, err := logger.New(cfg.LogLevel, opts.development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
