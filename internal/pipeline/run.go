package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"bindery/internal/batch"
	"bindery/internal/deps"
	"bindery/internal/ledger"
	"bindery/internal/logging"
	"bindery/internal/manifest"
	"bindery/internal/services"
	"bindery/internal/statuslog"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	RunID     string
	Total     int
	Complete  int
	Errored   int
	Manifests []string
}

// Run drives every candidate AIP folder to a terminal state, then finalizes
// the checksum manifests. Per-AIP errors divert that AIP and continue; only
// preconditions (lock, free space, metadata.csv validation) abort the batch.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if status := deps.CheckBatchRoot(r.root, r.cfg.Pipeline.MinFreeGiB); !status.Available {
		return Summary{}, fmt.Errorf("batch root precondition failed: %s", status.Detail)
	}

	locked, err := r.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("another bindery run already holds %s", r.lock.Path())
	}
	defer func() {
		_ = r.lock.Unlock()
	}()

	folders, strays, err := batch.Candidates(r.root)
	if err != nil {
		return Summary{}, err
	}
	for _, stray := range strays {
		r.logger.Warn("ignoring stray file in batch root", logging.String("name", stray))
	}

	// Validate the batch manifest before creating anything under the root,
	// so an aborted run leaves no output folders or status log behind.
	manifestIndex, err := r.loadManifestIndex(folders)
	if err != nil {
		return Summary{}, err
	}

	if err := batch.EnsureOutputDirs(r.root); err != nil {
		return Summary{}, err
	}

	statusLog, err := statuslog.Open(filepath.Join(r.root, batch.StatusLogName))
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if err := statusLog.Close(); err != nil {
			r.logger.Error("close status log", logging.Error(err))
		}
	}()

	var store *ledger.Store
	if r.cfg.Pipeline.LedgerEnabled {
		store, err = ledger.Open(filepath.Join(r.root, batch.LedgerName))
		if err != nil {
			return Summary{}, err
		}
		defer store.Close()
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	runLogger := r.logger.With(logging.String(logging.FieldRunID, runID))
	runLogger.Info("batch started",
		logging.String("batch_root", r.root),
		logging.Int("aip_count", len(folders)),
	)

	if store != nil {
		if err := store.BeginRun(ctx, runID, r.root, len(folders)); err != nil {
			return Summary{}, err
		}
	}

	run := &runState{
		runID:     runID,
		statusLog: statusLog,
		store:     store,
	}

	for i, folder := range folders {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		fmt.Fprintf(r.stdout, "Processing %s (%d of %d).\n", folder, i+1, len(folders))
		r.processAIP(ctx, run, folder, manifestIndex)
	}

	if store != nil {
		if err := store.FinishRun(ctx, runID, run.complete, run.errored); err != nil {
			runLogger.Error("record run completion", logging.Error(err))
		}
	}

	manifests, err := manifest.Finalize(filepath.Join(r.root, batch.IngestDir), time.Now(), runLogger)
	if err != nil {
		return Summary{}, err
	}
	if len(manifests) == 0 {
		fmt.Fprintln(r.stdout, "Could not make manifest. aips-to-ingest is empty.")
	} else {
		for _, path := range manifests {
			fmt.Fprintf(r.stdout, "Wrote manifest %s.\n", filepath.Base(path))
		}
	}

	runLogger.Info("batch finished",
		logging.Int("complete", run.complete),
		logging.Int("errored", run.errored),
		logging.Int("manifests", len(manifests)),
	)

	return Summary{
		RunID:     runID,
		Total:     len(folders),
		Complete:  run.complete,
		Errored:   run.errored,
		Manifests: manifests,
	}, nil
}

func (r *Runner) loadManifestIndex(folders []string) (map[string]batch.ManifestRow, error) {
	path := filepath.Join(r.root, batch.ManifestCSVName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("check metadata.csv: %w", err)
	}
	rows, err := batch.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := batch.ValidateManifest(rows, r.cfg.Pipeline.Departments, folders); err != nil {
		return nil, err
	}
	return batch.ManifestIndex(rows), nil
}

type runState struct {
	runID     string
	statusLog *statuslog.Writer
	store     *ledger.Store
	complete  int
	errored   int
}
