package main

import (
	"errors"

	"github.com/expki/go-numutil/config"
	"github.com/expki/go-numutil/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool

	config config.Config
}

// NewRootCommand creates the root command for the numutil CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "numutil",
		Short:         "Evaluate small numeric array functions",
		Long:          "numutil evaluates batches of diagonal product, multiset equality, max after zero, image reduction, run-length encoding and pairwise distance requests.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a JSON config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSampleCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func (o *RootOptions) load() (err error) {
	o.config = config.Default()
	if o.ConfigPath != "" {
		o.config, err = config.LoadConfig(o.ConfigPath)
		if err != nil {
			return errors.Join(errors.New("failed to load config"), err)
		}
	}
	level := o.config.LogLevel.Zap()
	if o.Verbose {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	err = logger.Initialize(level)
	if err != nil {
		return errors.Join(errors.New("failed to initialize logger"), err)
	}
	return nil
}
