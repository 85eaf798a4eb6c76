package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"bindery/internal/batch"
	"bindery/internal/config"
	"bindery/internal/extract"
	"bindery/internal/filter"
	"bindery/internal/logging"
	"bindery/internal/naming"
	"bindery/internal/packager"
	"bindery/internal/preserve"
	"bindery/internal/restructure"
	"bindery/internal/services/archiver"
	"bindery/internal/services/bagit"
	"bindery/internal/services/mediainfo"
	"bindery/internal/services/saxon"
	"bindery/internal/services/xmllint"
	"bindery/internal/stage"
)

// Runner executes one batch run over a batch root.
type Runner struct {
	cfg      *config.Config
	root     string
	logger   *slog.Logger
	stdout   io.Writer
	policies []naming.Policy
	stages   []stage.Handler
	lock     *flock.Flock
}

// Option configures a Runner.
type Option func(*Runner)

// WithStdout redirects the user-facing progress output (default os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.stdout = w
		}
	}
}

// WithStages replaces the stage chain (primarily for tests).
func WithStages(stages ...stage.Handler) Option {
	return func(r *Runner) {
		if len(stages) > 0 {
			r.stages = stages
		}
	}
}

// New constructs a Runner for the batch root, wiring the external tool
// clients from configuration.
func New(cfg *config.Config, root string, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline requires configuration")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve batch root: %w", err)
	}

	mediainfoClient, err := mediainfo.New(cfg.Tools.MediaInfo)
	if err != nil {
		return nil, err
	}
	saxonClient, err := saxon.New(cfg.Tools.Java, cfg.Tools.SaxonJar)
	if err != nil {
		return nil, err
	}
	lintClient, err := xmllint.New(cfg.Tools.XMLLint)
	if err != nil {
		return nil, err
	}
	bagitClient, err := bagit.New(cfg.Tools.BagIt)
	if err != nil {
		return nil, err
	}
	archiverClient, err := archiver.New(cfg.Tools.Archiver)
	if err != nil {
		return nil, err
	}

	runner := &Runner{
		cfg:      cfg,
		root:     absRoot,
		logger:   logger,
		stdout:   os.Stdout,
		policies: naming.Policies(cfg.Pipeline.Departments),
		lock:     flock.New(filepath.Join(absRoot, batch.LockName)),
		stages: []stage.Handler{
			filter.New(absRoot, logger),
			restructure.New(absRoot),
			extract.New(absRoot, filepath.Join(absRoot, batch.MediaInfoDir), mediainfoClient, logger),
			preserve.New(absRoot, preserve.Config{
				Stylesheet:   cfg.Metadata.Stylesheet,
				Schema:       cfg.Metadata.Schema,
				Namespace:    cfg.Metadata.Namespace,
				ValidatedDir: filepath.Join(absRoot, batch.PreservationDir),
			}, saxonClient, lintClient, logger),
			packager.New(absRoot, filepath.Join(absRoot, batch.IngestDir), bagitClient, archiverClient, logger),
		},
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}
