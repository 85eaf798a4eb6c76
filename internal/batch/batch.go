package batch

import (
	"fmt"
	"os"
)

// Names of pipeline output and control entries under the batch root. The
// batch driver never treats these as AIP candidates.
const (
	MediaInfoDir    = "mediainfo-xml"
	PreservationDir = "preservation-xml"
	IngestDir       = "aips-to-ingest"
	ErrorsDir       = "errors"
	StatusLogName   = "log.csv"
	LedgerName      = "bindery-ledger.db"
	LockName        = ".bindery.lock"
	ManifestCSVName = "metadata.csv"
)

var reserved = map[string]struct{}{
	MediaInfoDir:    {},
	PreservationDir: {},
	IngestDir:       {},
	ErrorsDir:       {},
	StatusLogName:   {},
	LedgerName:      {},
	LockName:        {},
	ManifestCSVName: {},
}

// Reserved reports whether a batch-root entry belongs to the pipeline rather
// than the working set.
func Reserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Candidates lists the AIP folders awaiting processing under root, in
// directory-listing order. Reserved entries and non-directories are skipped;
// stray files are returned separately so the caller can warn about them.
func Candidates(root string) (folders []string, strays []string, err error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("read batch root: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if Reserved(name) {
			continue
		}
		if !entry.IsDir() {
			strays = append(strays, name)
			continue
		}
		folders = append(folders, name)
	}
	return folders, strays, nil
}

// EnsureOutputDirs creates the shared pipeline output folders under root if
// absent. The errors/ partitions are created lazily on first diversion.
func EnsureOutputDirs(root string) error {
	for _, dir := range []string{MediaInfoDir, PreservationDir, IngestDir} {
		if err := os.MkdirAll(root+string(os.PathSeparator)+dir, 0o755); err != nil {
			return fmt.Errorf("create output folder %s: %w", dir, err)
		}
	}
	return nil
}
