package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rtsched/tickrts/internal/config"
	"github.com/rtsched/tickrts/internal/rtsim"
	"github.com/rtsched/tickrts/internal/trace"
)

func newRunCmd() *cobra.Command {
	var (
		taskSetPath string
		tickLimit   int64
		offset      int64
		duration    int64
		csvPath     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a fixed-priority rate-monotonic simulation and print its trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.Load(taskSetPath)
			if err != nil {
				return err
			}

			tasks, err := file.BuildTasks()
			if err != nil {
				return err
			}

			var oracle rtsim.VariationOracle = rtsim.NoVariationOracle{}
			if file.Options.RunTimeVariation {
				oracle = rtsim.NewBoundedRandomOracle(file.Options.RandomSeed, file.Options.InterArrivalCeilFactor)
			}

			sim, err := rtsim.NewSimulator(tasks, rtsim.NewFixedPriorityRM(), oracle, file.Options.ToSimOptions())
			if err != nil {
				return err
			}

			var container *rtsim.EventContainer
			if duration > 0 {
				container, err = sim.RunSimWithOffset(offset, duration)
			} else {
				container, err = sim.RunSim(tickLimit)
			}
			if err != nil {
				return fmt.Errorf("simulation aborted: %w", err)
			}

			log.WithFields(logrus.Fields{
				"run_id": container.RunID,
				"policy": container.SchedulingPolicy,
				"events": container.Len(),
			}).Info("simulation complete")

			fmt.Println(trace.RenderRaw(container))

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("run: creating %s: %w", csvPath, err)
				}
				defer f.Close()

				if err := trace.WriteCSV(container, f); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&taskSetPath, "taskset", "", "path to a YAML task-set/options file")
	cmd.Flags().Int64Var(&tickLimit, "tick-limit", 100, "run until this tick (ignored if --duration is set)")
	cmd.Flags().Int64Var(&offset, "offset", 0, "warm-up offset in ticks, used with --duration")
	cmd.Flags().Int64Var(&duration, "duration", 0, "run offset+duration ticks, discarding the warm-up window")
	cmd.Flags().StringVar(&csvPath, "csv-out", "", "optional path to write the trace as CSV")

	return cmd
}
