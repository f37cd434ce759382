package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storysnap/internal/config"
	"storysnap/internal/scenario"
)

func simulateCmd() *cobra.Command {
	var (
		cfgPath     string
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "simulate <scenario.toml>",
		Short: "Replay a scripted scroll scenario and print the decision trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			sc, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}
			res := scenario.NewRunner(cfg, log.Logger).Run(sc)
			return writeResult(cmd.OutOrStdout(), cfg, sc, res, showMetrics)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default ./.storysnap.toml, then the user config)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", true, "print a metrics summary after the trace")
	return cmd
}

func writeResult(w io.Writer, cfg *config.Config, sc *scenario.Scenario, res *scenario.Result, showMetrics bool) error {
	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	fmt.Fprintf(w, "# %s (%d steps, %s simulated)\n", name, len(sc.Steps), res.Elapsed)
	if _, err := res.Trace.WriteTo(w); err != nil {
		return err
	}

	active := "none"
	if res.HasActive {
		active = cfg.Title(res.Active.ID)
	}
	fmt.Fprintf(w, "\nfinal position %.0fpx, active section %s\n", res.Position, active)

	if showMetrics {
		fmt.Fprintln(w, "\n# metrics")
		return res.Metrics.WriteSummary(w)
	}
	return nil
}
