package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ticksched",
		Short: "Simulate a rate-monotonic, tick-driven real-time task scheduler",
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())

	return root
}
