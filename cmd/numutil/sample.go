package main

import (
	"fmt"

	"github.com/expki/go-numutil/config"
	"github.com/spf13/cobra"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <path>",
		Short: "Write a sample config file",
		Args:  cobra.ExactArgs(1),
		// the sample must be writable even when the current config is broken
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := config.CreateSample(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sample config written to %s\n", args[0])
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
