// Package extract runs the technical-metadata extractor against an AIP's
// objects folder and caches a staff-reference copy of the output.
package extract

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
	"bindery/internal/services/mediainfo"
)

// Handler is the metadata-extraction stage.
type Handler struct {
	root     string
	cacheDir string
	client   *mediainfo.Client
	logger   *slog.Logger
}

// New constructs the extraction stage. cacheDir is the shared staff-reference
// folder under the batch root.
func New(root, cacheDir string, client *mediainfo.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{root: root, cacheDir: cacheDir, client: client, logger: logger}
}

func (h *Handler) Name() string { return "extract" }

// Execute captures the extractor's output into the AIP's metadata folder and
// copies it into the shared cache. A file of the same name already in the
// cache means a duplicate AIP id within this batch; the AIP diverts rather
// than overwrite prior evidence. Extractor failures are logged and left for
// the preservation stage's missing-output check to divert, matching how the
// workflow has always funneled extraction problems.
func (h *Handler) Execute(ctx context.Context, item *aip.Item) error {
	output := filepath.Join(item.MetadataPath(h.root), item.MediaInfoName())

	if err := h.client.Extract(ctx, item.ObjectsPath(h.root), output); err != nil {
		logging.WithContext(ctx, h.logger).Warn("mediainfo extraction failed",
			logging.Error(err),
			logging.String(logging.FieldFolder, item.Folder),
		)
		return nil
	}

	cached := filepath.Join(h.cacheDir, item.MediaInfoName())
	if _, err := os.Stat(cached); err == nil {
		return &services.Divert{
			Kind: aip.ErrPreexistingMediaInfo,
			Err:  fmt.Errorf("cache already holds %s", item.MediaInfoName()),
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("check extraction cache: %w", err)
	}

	if err := fileutil.CopyFile(output, cached); err != nil {
		return fmt.Errorf("copy extraction output to cache: %w", err)
	}
	return nil
}
