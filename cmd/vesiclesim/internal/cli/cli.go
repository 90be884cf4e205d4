// Package cli wires the vesiclesim cobra command tree: run and
// validate against a configuration file.
package cli

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	"github.com/bielosheikin/vesiclesim/config"
	"github.com/bielosheikin/vesiclesim/simulation"
)

// Root builds the top-level vesiclesim command.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "vesiclesim",
		Short: "Simulate a lipid vesicle's electrochemical state over time",
	}
	root.AddCommand(runCmd(), validateCmd())
	return root
}

func runCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "Run a simulation and write its recorded history as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			sim, err := simulation.New(cfg)
			if err != nil {
				return err
			}
			io.Pf("running %q: %d iterations\n", cfg.Simulation.DisplayName, sim.IterNum())
			if err := sim.Run(func(pct float64) {
				io.Pf("\rprogress: %5.1f%%", pct)
			}); err != nil {
				return err
			}
			io.Pf("\n")
			for _, w := range sim.Warnings() {
				io.PfYel("warning [step %d] %s.%s: %s\n", w.Step, w.Entity, w.Field, w.Message)
			}
			return writeReport(outPath, sim)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "history.json", "path to write the recorded history")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a configuration file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if _, err := simulation.New(cfg); err != nil {
				return err
			}
			io.PfGreen("config %q is valid\n", args[0])
			return nil
		},
	}
}

// report is the JSON shape written by `vesiclesim run`, per the
// persistence interface described in spec.md §6: a metadata record
// plus the series dictionary.
type report struct {
	Count     int                  `json:"count"`
	TimeStep  float64              `json:"time_step"`
	TotalTime float64              `json:"total_time"`
	Series    map[string][]float64 `json:"series"`
}

func writeReport(path string, sim *simulation.Simulation) error {
	store := sim.History()
	rep := report{
		Count:     store.Len(),
		TimeStep:  sim.TimeStep(),
		TotalTime: sim.TotalTime(),
		Series:    store.All(),
	}
	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
