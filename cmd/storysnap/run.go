package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storysnap/internal/metrics"
	"storysnap/internal/ui"
)

func runCmd() *cobra.Command {
	var (
		cfgPath     string
		metricsAddr string
		logPath     string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scroll the configured page in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so logs go to a file
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("could not open log file: %w", err)
			}
			defer logFile.Close()
			log.Logger = zerolog.New(logFile).With().Timestamp().Logger()

			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			reg := metrics.NewRegistry()
			if metricsAddr != "" {
				go func() {
					if err := reg.Serve(cmd.Context(), metricsAddr); err != nil {
						log.Error().Err(err).Msg("metrics server stopped")
					}
				}()
			}

			logger := log.Logger
			model := ui.NewModel(cfg, ui.Deps{Metrics: reg, Logger: &logger})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			model.SetProgram(p)

			log.Info().Int("sections", len(cfg.Layout)).Msg("storysnap starting")
			if _, err := p.Run(); err != nil {
				if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
					return nil
				}
				return fmt.Errorf("error running program: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./.storysnap.toml, then the user config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:9102")
	cmd.Flags().StringVar(&logPath, "log-file", "storysnap.log", "log file")
	return cmd
}
