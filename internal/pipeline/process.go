package pipeline

import (
	"context"
	"os"
	"strings"

	"bindery/internal/aip"
	"bindery/internal/batch"
	"bindery/internal/ledger"
	"bindery/internal/logging"
	"bindery/internal/naming"
	"bindery/internal/services"
)

// stageStatus maps a completed stage to the item's next lifecycle state.
var stageStatus = map[string]aip.Status{
	"filter":      aip.StatusFiltered,
	"restructure": aip.StatusRestructured,
	"extract":     aip.StatusExtracted,
	"preserve":    aip.StatusPreserved,
	"package":     aip.StatusPackaged,
}

// processAIP drives one folder to a terminal state. Diversions and
// unexpected stage errors are handled here; nothing per-AIP propagates out.
func (r *Runner) processAIP(ctx context.Context, run *runState, folder string, manifestIndex map[string]batch.ManifestRow) {
	item := &aip.Item{
		SourceFolder: folder,
		Folder:       folder,
		Status:       aip.StatusDiscovered,
	}

	resolved, err := r.resolveIdentity(folder, manifestIndex)
	if err != nil {
		if divert, ok := services.AsDivert(err); ok {
			r.divert(ctx, run, item, "naming", divert)
			return
		}
		r.divert(ctx, run, item, "naming", &services.Divert{Kind: aip.ErrFolderNameInvalid, Err: err})
		return
	}

	listing, err := firstLevelListing(item.Path(r.root))
	if err != nil {
		r.logger.Error("list aip folder", logging.Error(err), logging.String(logging.FieldFolder, folder))
		r.divert(ctx, run, item, "naming", &services.Divert{Kind: aip.ErrFolderNameInvalid, Err: err})
		return
	}
	classification := naming.Classify(listing)
	if classification.Mixed {
		r.logger.Warn("folder mixes media and metadata extensions; classifying as metadata",
			logging.String(logging.FieldFolder, folder),
		)
	}

	item.Department = resolved.Department
	item.Title = resolved.Title
	item.Type = classification.Type
	item.ID = naming.FinalID(resolved.Base, classification.Type)
	item.CanonicalFolder = resolved.RenameTo
	item.Status = aip.StatusNamed

	ctx = services.WithAIPID(ctx, item.ID)
	r.recordEvent(ctx, run, item, "naming", string(aip.StatusNamed), "")

	for _, handler := range r.stages {
		stageCtx := services.WithStage(ctx, handler.Name())
		if err := handler.Execute(stageCtx, item); err != nil {
			if divert, ok := services.AsDivert(err); ok {
				r.divert(stageCtx, run, item, handler.Name(), divert)
				return
			}
			// Unexpected failures still terminate the AIP, under a
			// stage-named partition, so the one-terminal-row
			// invariant holds.
			r.divert(stageCtx, run, item, handler.Name(), &services.Divert{
				Kind: aip.ErrorKind(handler.Name() + "_failed"),
				Err:  err,
			})
			return
		}
		item.Status = stageStatus[handler.Name()]
		r.recordEvent(stageCtx, run, item, handler.Name(), string(item.Status), "")
	}

	run.complete++
	if err := run.statusLog.Record(item.SourceFolder, aip.CompleteStatus); err != nil {
		r.logger.Error("record status row", logging.Error(err), logging.String(logging.FieldFolder, item.SourceFolder))
	}
	r.recordEvent(ctx, run, item, "package", aip.CompleteStatus, "")
}

func (r *Runner) resolveIdentity(folder string, manifestIndex map[string]batch.ManifestRow) (naming.Resolved, error) {
	if row, ok := manifestIndex[folder]; ok {
		resolved := naming.Resolved{
			Department: aip.Department(strings.ToLower(row.Department)),
			Base:       row.AIPID,
			Title:      row.Title,
		}
		if row.AIPID != folder {
			resolved.RenameTo = row.AIPID
		}
		return resolved, nil
	}
	return naming.Resolve(folder, r.policies)
}

func (r *Runner) recordEvent(ctx context.Context, run *runState, item *aip.Item, stageName, status, detail string) {
	if run.store == nil {
		return
	}
	event := ledger.Event{
		RunID:  run.runID,
		AIPID:  item.ID,
		Folder: item.SourceFolder,
		Stage:  stageName,
		Status: status,
		Detail: detail,
	}
	if err := run.store.RecordEvent(ctx, event); err != nil {
		r.logger.Error("record ledger event", logging.Error(err), logging.String(logging.FieldFolder, item.SourceFolder))
	}
}

func firstLevelListing(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
