package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"bindery/internal/batch"
	"bindery/internal/ledger"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "report <batch-root>",
		Short: "Show the outcome of the most recent batch run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}

			store, err := ledger.Open(filepath.Join(args[0], batch.LedgerName))
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := resolveRun(cmd, store, runID)
			if err != nil {
				if errors.Is(err, ledger.ErrNoRuns) {
					return fmt.Errorf("no runs recorded for %s", args[0])
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", run.RunID)
			fmt.Fprintf(out, "  Batch root: %s\n", run.BatchRoot)
			fmt.Fprintf(out, "  Started:    %s\n", run.StartedAt.Local().Format(time.RFC3339))
			if run.FinishedAt != nil {
				fmt.Fprintf(out, "  Finished:   %s\n", run.FinishedAt.Local().Format(time.RFC3339))
			} else {
				fmt.Fprintln(out, "  Finished:   (in progress or interrupted)")
			}
			fmt.Fprintf(out, "  AIPs:       %d total, %d complete, %d errored\n\n",
				run.Total, run.Complete, run.Errored)

			events, err := store.EventsForRun(cmd.Context(), run.RunID)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No events recorded for this run.")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for i, event := range events {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					event.Folder,
					event.AIPID,
					event.Stage,
					event.Status,
					event.Detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Folder", "AIP ID", "Stage", "Status", "Detail"},
				rows,
				1,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Report a specific run instead of the latest")
	return cmd
}

func resolveRun(cmd *cobra.Command, store *ledger.Store, runID string) (ledger.Run, error) {
	if runID == "" {
		return store.LatestRun(cmd.Context())
	}
	return store.RunByID(cmd.Context(), runID)
}
