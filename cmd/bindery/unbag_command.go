package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/config"
	"bindery/internal/services/bagit"
	"bindery/internal/unbag"
)

func newUnbagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unbag <transfer-bag>",
		Short: "Validate a transfer bag and flatten it into an AIPs directory",
		Long: "Unbag validates the transfer bag, removes the bag metadata files,\n" +
			"and moves the contents of data/ up so the folder can be used as a\n" +
			"batch root for bindery run.",
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

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			client, err := bagit.New(cfg.Tools.BagIt)
			if err != nil {
				return err
			}
			if err := unbag.Flatten(cmd.Context(), path, client, logger); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Unbagged %s.\n", path)
			return nil
		},
	}
}
