// Package unbag prepares a transfer bag for batch processing: it validates
// the bag, strips the bag metadata files, and flattens data/ so the bag
// folder becomes an AIPs directory.
package unbag

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bindery/internal/logging"
	"bindery/internal/services/bagit"
)

// Flatten validates the transfer bag at path and unpacks it in place. An
// invalid bag leaves the transfer untouched and returns the validator's
// diagnostics; a batch must never be built from content that may have been
// corrupted in transit.
func Flatten(ctx context.Context, path string, client *bagit.Client, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}

	report, err := client.Validate(ctx, path)
	if err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("transfer bag is not valid:\n  %s", strings.Join(report.Diagnostics, "\n  "))
	}
	logger.Info("transfer bag validated", logging.String("bag", path))

	// Bag metadata files are all text files directly within the bag; after
	// they are gone only the data folder remains.
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read transfer bag: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		if err := os.Remove(filepath.Join(path, entry.Name())); err != nil {
			return fmt.Errorf("remove bag metadata %s: %w", entry.Name(), err)
		}
	}

	dataDir := filepath.Join(path, "data")
	dataEntries, err := os.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("read data folder: %w", err)
	}
	for _, entry := range dataEntries {
		from := filepath.Join(dataDir, entry.Name())
		to := filepath.Join(path, entry.Name())
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("move %s out of data: %w", entry.Name(), err)
		}
	}
	if err := os.Remove(dataDir); err != nil {
		return fmt.Errorf("remove empty data folder: %w", err)
	}

	logger.Info("transfer bag flattened into aips directory",
		logging.String("path", path),
		logging.Int("entries", len(dataEntries)),
	)
	return nil
}
