package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtsched/tickrts/internal/config"
)

func newValidateCmd() *cobra.Command {
	var taskSetPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a task-set file without running a simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.Load(taskSetPath)
			if err != nil {
				return err
			}

			tasks, err := file.BuildTasks()
			if err != nil {
				return err
			}

			log.Infof("task set %s is valid: %d tasks", taskSetPath, len(tasks))
			fmt.Printf("%d tasks loaded\n", len(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskSetPath, "taskset", "", "path to a YAML task-set/options file")
	_ = cmd.MarkFlagRequired("taskset")

	return cmd
}
