package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storysnap/internal/config"
)

// Execute builds the command tree and runs it
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "storysnap",
		Short:         "Section snapping for long scrolling pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd(), simulateCmd(), configCmd())
	return root
}

// loadConfig reads an explicit path, then ./.storysnap.toml, then the
// user config, falling back to the defaults
func loadConfig(path string) (*config.Config, error) {
	svc := config.NewConfigService()
	if path != "" {
		return svc.LoadFromPath(path)
	}
	if _, err := os.Stat(config.FileName); err == nil {
		return svc.LoadFromPath(config.FileName)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to check %s: %w", config.FileName, err)
	}

	cfg, err := svc.Load()
	if err != nil {
		log.Warn().Err(err).Msg("error loading config, using defaults")
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}
