package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/expki/go-numutil/batch"
	"github.com/expki/go-numutil/logger"
	"github.com/spf13/cobra"
)

type runOptions struct {
	Out     string
	Format  string
	Workers int
	Cast    string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [request-file...]",
		Short: "Evaluate request files",
		Long: fmt.Sprintf(`Evaluate one or more JSON request files (zstd-compressed when the name ends in .zst).

Each request names an operation and its operands, for example:
  {"id": "a", "op": "max_after_zero", "x": [6, 2, 0, 3, 0, 0, 5, 7, 0]}

Operations: %s.

Operands written only with integer literals are evaluated exactly as int64; a diagonal
product that leaves the int64 range is reported as float64. An operand containing any
fractional or exponent literal is evaluated as float64, exact only up to 2^53.
Results that are not finite are reported as errors.

Without arguments the files listed under batch.inputs in the config are used.`, batch.OperationNames()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write responses to this file instead of stdout (.zst compresses)")
	cmd.Flags().StringVar(&opts.Format, "format", string(batch.FormatJSON), "output format (json|text)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "override batch.workers")
	cmd.Flags().StringVar(&opts.Cast, "cast", "", "override image.cast (wrap|clamp)")

	return cmd
}

func runBatch(cmd *cobra.Command, rootOpts *RootOptions, opts *runOptions, args []string) error {
	cfg := rootOpts.config
	if opts.Workers > 0 {
		cfg.Batch.Workers = opts.Workers
	}
	if opts.Cast != "" {
		cfg.Image.Cast = opts.Cast
	}
	format := batch.Format(opts.Format)
	if format != batch.FormatJSON && format != batch.FormatText {
		return fmt.Errorf("invalid format %q: must be json or text", opts.Format)
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Batch.Inputs
	}
	if len(paths) == 0 {
		return errors.New("no request files given")
	}

	var requests []batch.Request
	for _, path := range paths {
		list, err := batch.ReadRequests(path)
		if err != nil {
			return err
		}
		logger.Sugar().Debugf("loaded %d requests from %s", len(list), path)
		requests = append(requests, list...)
	}

	var progress io.Writer
	if cfg.Batch.Progress {
		progress = cmd.ErrOrStderr()
	}
	runner, err := batch.NewRunner(cfg, progress)
	if err != nil {
		return err
	}

	responses, err := runner.Run(cmd.Context(), requests)
	if err != nil {
		return err
	}

	if opts.Out != "" {
		return batch.WriteResponsesFile(opts.Out, responses, format)
	}
	return batch.WriteResponses(cmd.OutOrStdout(), responses, format, false)
}
