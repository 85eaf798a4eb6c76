// Package manifest writes the end-of-batch checksum manifests over the
// ingest-staging folder, partitioned by department-identifying prefix.
package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bindery/internal/aip"
	"bindery/internal/fileutil"
	"bindery/internal/logging"
	"bindery/internal/naming"
)

// timestampLayout matches the run-stamp embedded in manifest filenames.
const timestampLayout = "2006-01-02-1504"

// Finalize hashes every staged artifact and appends `checksum<TAB>filename`
// lines into one manifest per department. It returns the manifest paths
// written; an empty staging folder returns none, which is a valid outcome
// for a fully-failed batch, not an error. Lines follow directory-listing
// order.
func Finalize(stagingDir string, now time.Time, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		return nil, fmt.Errorf("read staging folder: %w", err)
	}

	stamp := now.Format(timestampLayout)
	lines := make(map[aip.Department][]string)
	order := make([]aip.Department, 0, 2)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isManifestFile(name) {
			continue
		}
		dept, ok := naming.DepartmentForArtifact(name)
		if !ok {
			logger.Warn("staged artifact matches no department prefix; not added to any manifest",
				logging.String("artifact", name),
			)
			continue
		}
		sum, err := fileutil.HashFileMD5(filepath.Join(stagingDir, name))
		if err != nil {
			return nil, fmt.Errorf("hash %s: %w", name, err)
		}
		if _, seen := lines[dept]; !seen {
			order = append(order, dept)
		}
		lines[dept] = append(lines[dept], sum+"\t"+name)
	}

	written := make([]string, 0, len(order))
	for _, dept := range order {
		path := filepath.Join(stagingDir, fmt.Sprintf("%s_%s_manifest.txt", stamp, dept))
		content := strings.Join(lines[dept], "\n") + "\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write manifest for %s: %w", dept, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func isManifestFile(name string) bool {
	return strings.HasSuffix(name, "_manifest.txt")
}
