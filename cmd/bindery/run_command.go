package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bindery/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run <batch-root>",
		Short: "Process every AIP folder in a batch directory",
		Long: "Run drives each AIP folder in the batch root through naming, file\n" +
			"filtering, restructuring, metadata extraction, preservation metadata,\n" +
			"and bagging, then writes per-department checksum manifests. Folders\n" +
			"that fail are moved into an errors/ partition and the batch continues.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner, err := pipeline.New(cfg, args[0], logger, pipeline.WithStdout(cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			summary, err := runner.Run(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Script is finished running: %d complete, %d errored of %d.\n",
				summary.Complete, summary.Errored, summary.Total)
			return nil
		},
	}
}
