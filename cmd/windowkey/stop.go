package main

import (
	"fmt"

	"github.com/1broseidon/windowkey/internal/daemon"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a daemon started with --detach",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := daemon.DefaultDetachPaths()
		if err != nil {
			return err
		}
		pid, err := daemon.Stop(paths)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent stop signal to windowkey (pid %d)\n", pid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
