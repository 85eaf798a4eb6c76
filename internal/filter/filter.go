// Package filter removes disallowed file types from an AIP folder before any
// metadata is extracted.
package filter

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bindery/internal/aip"
	"bindery/internal/fileutil"
	"bindery/internal/logging"
	"bindery/internal/services"
)

// keepExtensions is the allow-list of payload formats. Everything else is
// deleted before extraction so stray working files never reach a package.
var keepExtensions = map[string]struct{}{
	".dv":  {},
	".mov": {},
	".mp3": {},
	".mp4": {},
	".wav": {},
	".pdf": {},
	".xml": {},
}

// Allowed reports whether a filename's extension is on the keep list.
func Allowed(name string) bool {
	_, ok := keepExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Handler is the content-filter stage.
type Handler struct {
	root   string
	logger *slog.Logger
}

// New constructs the filter stage for a batch root.
func New(root string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{root: root, logger: logger}
}

func (h *Handler) Name() string { return "filter" }

// Execute deletes every file under the AIP folder whose extension is not on
// the allow-list. An AIP left with zero files diverts to all_files_deleted;
// processing a folder whose entire payload was disallowed would package
// nothing.
func (h *Handler) Execute(ctx context.Context, item *aip.Item) error {
	path := item.Path(h.root)

	removed := 0
	err := filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || Allowed(d.Name()) {
			return nil
		}
		if err := os.Remove(entry); err != nil {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return err
	}
	if removed > 0 {
		logging.WithContext(ctx, h.logger).Info("removed disallowed files",
			logging.Int("removed", removed),
			logging.String(logging.FieldFolder, item.Folder),
		)
	}

	remaining, err := fileutil.CountFiles(path)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return &services.Divert{Kind: aip.ErrAllFilesDeleted}
	}
	return nil
}
