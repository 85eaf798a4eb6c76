// Package restructure imposes the canonical two-folder AIP layout: the
// original payload under objects/ and an empty metadata/ sibling.
package restructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bindery/internal/aip"
	"bindery/internal/services"
)

// Handler is the directory-restructure stage.
type Handler struct {
	root string
}

// New constructs the restructure stage for a batch root.
func New(root string) *Handler {
	return &Handler{root: root}
}

func (h *Handler) Name() string { return "restructure" }

// Execute creates objects/, moves the payload into it, and creates metadata/.
// A pre-existing objects folder signals the input was not in the expected
// pre-restructure state; merging into it would silently corrupt or duplicate
// content, so the AIP diverts instead. Afterwards the folder is renamed to
// the department's canonical name when one applies.
func (h *Handler) Execute(ctx context.Context, item *aip.Item) error {
	path := item.Path(h.root)
	objects := filepath.Join(path, "objects")

	if err := os.Mkdir(objects, 0o755); err != nil {
		if os.IsExist(err) {
			return &services.Divert{Kind: aip.ErrPreexistingObjects}
		}
		return fmt.Errorf("create objects folder: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("list aip folder: %w", err)
	}
	for _, entry := range entries {
		if entry.Name() == "objects" {
			continue
		}
		from := filepath.Join(path, entry.Name())
		to := filepath.Join(objects, entry.Name())
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("move %s into objects: %w", entry.Name(), err)
		}
	}

	// Safe unconditionally: everything above just moved into objects/.
	if err := os.Mkdir(filepath.Join(path, "metadata"), 0o755); err != nil {
		return fmt.Errorf("create metadata folder: %w", err)
	}

	if item.CanonicalFolder != "" && item.CanonicalFolder != item.Folder {
		target := filepath.Join(h.root, item.CanonicalFolder)
		if err := os.Rename(path, target); err != nil {
			return fmt.Errorf("rename to canonical folder name: %w", err)
		}
		item.Folder = item.CanonicalFolder
	}
	return nil
}
