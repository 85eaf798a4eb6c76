package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [batch-root]",
		Short: "Verify external tools, transform inputs, and batch root readiness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			statuses = append(statuses, deps.CheckFiles(cfg)...)
			if len(args) == 1 {
				statuses = append(statuses, deps.CheckBatchRoot(args[0], cfg.Pipeline.MinFreeGiB))
			}

			rows := make([][]string, 0, len(statuses))
			failed := 0
			for _, status := range statuses {
				detail := status.Detail
				if status.Available && detail == "" {
					detail = "ok"
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
				if !status.Available && !status.Optional {
					failed++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Command / Path", "Available", "Detail"},
				rows,
			))

			if failed > 0 {
				return fmt.Errorf("%d required dependency check(s) failed", failed)
			}
			fmt.Fprintln(out, "All dependency checks passed.")
			return nil
		},
	}
}
