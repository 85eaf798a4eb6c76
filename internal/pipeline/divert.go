package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bindery/internal/aip"
	"bindery/internal/batch"
	"bindery/internal/logging"
	"bindery/internal/services"
)

// divert relocates the AIP folder to errors/<kind>, writes the sidecar
// diagnostics for validation-class errors, and records the terminal outcome
// in the status log and ledger. Partitions are created lazily on first use
// and accumulate across AIPs.
func (r *Runner) divert(ctx context.Context, run *runState, item *aip.Item, stageName string, divert *services.Divert) {
	logger := logging.WithContext(ctx, r.logger)

	partition := filepath.Join(r.root, batch.ErrorsDir, string(divert.Kind))
	if err := os.MkdirAll(partition, 0o755); err != nil {
		logger.Error("create error partition", logging.Error(err), logging.String(logging.FieldErrorKind, string(divert.Kind)))
	} else if err := os.Rename(item.Path(r.root), filepath.Join(partition, item.Folder)); err != nil {
		logger.Error("relocate aip to error partition",
			logging.Error(err),
			logging.String(logging.FieldFolder, item.Folder),
			logging.String(logging.FieldErrorKind, string(divert.Kind)),
		)
	}

	if divert.Sidecar != "" && len(divert.Diagnostics) > 0 {
		if err := writeSidecar(filepath.Join(partition, divert.Sidecar), divert.Diagnostics); err != nil {
			logger.Error("write diagnostic sidecar", logging.Error(err))
		}
	}

	item.Status = aip.StatusErrored
	run.errored++
	if err := run.statusLog.Record(item.SourceFolder, string(divert.Kind)); err != nil {
		logger.Error("record status row", logging.Error(err), logging.String(logging.FieldFolder, item.SourceFolder))
	}

	detail := ""
	if divert.Err != nil {
		detail = divert.Err.Error()
	}
	r.recordEvent(ctx, run, item, stageName, string(divert.Kind), detail)

	logger.Warn("aip diverted",
		logging.String(logging.FieldFolder, item.SourceFolder),
		logging.String(logging.FieldStage, stageName),
		logging.String(logging.FieldErrorKind, string(divert.Kind)),
		logging.Error(divert.Err),
	)
}

// writeSidecar appends diagnostics as blank-line-separated paragraphs so
// each validator message reads as its own block.
func writeSidecar(path string, diagnostics []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open sidecar: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, line := range diagnostics {
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return f.Close()
}
