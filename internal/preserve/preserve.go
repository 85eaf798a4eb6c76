// Package preserve derives the preservation-description document from
// extracted technical metadata and validates it against the repository
// schema.
package preserve

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
	"bindery/internal/services/saxon"
	"bindery/internal/services/xmllint"
)

// Config carries the transform inputs the stage needs.
type Config struct {
	Stylesheet string
	Schema     string
	Namespace  string
	// ValidatedDir is the shared cache of schema-valid preservation records.
	ValidatedDir string
}

// Handler is the preservation-metadata stage.
type Handler struct {
	root   string
	cfg    Config
	saxon  *saxon.Client
	lint   *xmllint.Client
	logger *slog.Logger
}

// New constructs the preservation stage.
func New(root string, cfg Config, saxonClient *saxon.Client, lintClient *xmllint.Client, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{root: root, cfg: cfg, saxon: saxonClient, lint: lintClient, logger: logger}
}

func (h *Handler) Name() string { return "preserve" }

// Execute transforms the extraction output into the preservation document,
// validates it, and on success copies it to the validated-records cache. A
// missing extraction output diverts to no_mediainfo_xml; a document that
// cannot be loaded or fails schema validation diverts to preservation_invalid
// with the validator's diagnostics for the sidecar.
func (h *Handler) Execute(ctx context.Context, item *aip.Item) error {
	metadataDir := item.MetadataPath(h.root)
	source := filepath.Join(metadataDir, item.MediaInfoName())
	derived := filepath.Join(metadataDir, item.PreservationName())

	// Guards against stage reordering or a prior partial failure.
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return &services.Divert{Kind: aip.ErrNoMediaInfoXML}
		}
		return fmt.Errorf("check extraction output: %w", err)
	}

	params := map[string]string{
		"aip-id":     item.ID,
		"department": string(item.Department),
		"title":      item.DisplayTitle(),
		"type":       string(item.Type),
		"ns":         h.cfg.Namespace,
	}
	if err := h.saxon.Transform(ctx, source, h.cfg.Stylesheet, derived, params); err != nil {
		// A failed transform leaves no document; validation below reports
		// the load failure and diverts.
		logging.WithContext(ctx, h.logger).Warn("metadata transform failed",
			logging.Error(err),
			logging.String(logging.FieldFolder, item.Folder),
		)
	}

	report, err := h.lint.Validate(ctx, h.cfg.Schema, derived)
	if err != nil {
		return err
	}
	if !report.Valid {
		return &services.Divert{
			Kind:        aip.ErrPreservationInvalid,
			Sidecar:     item.ID + "_preservationxml_validation_error.txt",
			Diagnostics: report.Diagnostics,
		}
	}

	validated := filepath.Join(h.cfg.ValidatedDir, item.PreservationName())
	if err := fileutil.CopyFile(derived, validated); err != nil {
		return fmt.Errorf("copy preservation record to validated cache: %w", err)
	}
	return nil
}
