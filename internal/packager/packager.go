// Package packager bags an AIP, validates the bag, and produces the final
// compressed artifact in the ingest-staging folder.
package packager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bindery/internal/aip"
	"bindery/internal/fileutil"
	"bindery/internal/logging"
	"bindery/internal/services"
	"bindery/internal/services/archiver"
	"bindery/internal/services/bagit"
)

// Handler is the packaging stage, the pipeline's sole success exit.
type Handler struct {
	root       string
	stagingDir string
	bagit      *bagit.Client
	archiver   *archiver.Client
	logger     *slog.Logger
}

// New constructs the packaging stage. stagingDir is the shared ingest
// staging folder under the batch root.
func New(root, stagingDir string, bagitClient *bagit.Client, archiverClient *archiver.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		root:       root,
		stagingDir: stagingDir,
		bagit:      bagitClient,
		archiver:   archiverClient,
		logger:     logger,
	}
}

func (h *Handler) Name() string { return "package" }

// Execute scrubs OS artifacts, bags the folder with md5+sha256 manifests,
// renames it to the bag name, validates the bag, and archives it into the
// staging folder. Bag validation failure diverts to bag_invalid with the
// validator's diagnostics; an archive failure diverts to archive_failed so
// the AIP still reaches a terminal state with no artifact left behind.
func (h *Handler) Execute(ctx context.Context, item *aip.Item) error {
	path := item.Path(h.root)

	// Re-scrubbed here because the environment can regenerate these files
	// between stages and they break checksum manifests.
	if err := fileutil.RemoveOSArtifacts(path); err != nil {
		return fmt.Errorf("scrub OS artifacts: %w", err)
	}

	if err := h.bagit.MakeBag(ctx, path); err != nil {
		// Leave detection to bag validation below, which reports the
		// specific payload problems.
		logging.WithContext(ctx, h.logger).Warn("bagging failed",
			logging.Error(err),
			logging.String(logging.FieldFolder, item.Folder),
		)
	}

	bagPath := filepath.Join(h.root, item.BagName())
	if err := os.Rename(path, bagPath); err != nil {
		return fmt.Errorf("rename to bag name: %w", err)
	}
	item.Folder = item.BagName()

	report, err := h.bagit.Validate(ctx, bagPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		return &services.Divert{
			Kind:        aip.ErrBagInvalid,
			Sidecar:     item.ID + "_bag_validation_error.txt",
			Diagnostics: report.Diagnostics,
		}
	}

	artifact, err := h.archiver.Archive(ctx, bagPath, h.stagingDir)
	if err != nil {
		return &services.Divert{Kind: aip.ErrArchiveFailed, Err: err}
	}
	logging.WithContext(ctx, h.logger).Info("aip packaged",
		logging.String("artifact", filepath.Base(artifact)),
		logging.String(logging.FieldFolder, item.Folder),
	)
	return nil
}
