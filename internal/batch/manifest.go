package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ManifestRow is one entry of the optional metadata.csv batch manifest.
type ManifestRow struct {
	Department string
	Collection string
	Folder     string
	AIPID      string
	Title      string
	Version    string
}

var manifestHeader = []string{"Department", "Collection", "Folder", "AIP_ID", "Title", "Version"}

// LoadManifest reads and parses metadata.csv, verifying the header columns.
func LoadManifest(path string) ([]ManifestRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata.csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(manifestHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse metadata.csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("metadata.csv is empty")
	}

	for i, want := range manifestHeader {
		if got := strings.TrimSpace(records[0][i]); got != want {
			return nil, fmt.Errorf("metadata.csv header column %d is %q, expected %q", i+1, got, want)
		}
	}

	rows := make([]ManifestRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, ManifestRow{
			Department: strings.TrimSpace(record[0]),
			Collection: strings.TrimSpace(record[1]),
			Folder:     strings.TrimSpace(record[2]),
			AIPID:      strings.TrimSpace(record[3]),
			Title:      strings.TrimSpace(record[4]),
			Version:    strings.TrimSpace(record[5]),
		})
	}
	return rows, nil
}

// ValidateManifest checks the manifest rows against the configured department
// allow-list and the batch folder listing. Every violation is reported; any
// violation aborts the whole batch before an AIP is touched.
func ValidateManifest(rows []ManifestRow, departments []string, folders []string) error {
	allowed := make(map[string]struct{}, len(departments))
	for _, dept := range departments {
		allowed[strings.ToLower(strings.TrimSpace(dept))] = struct{}{}
	}

	var problems []string

	seen := make(map[string]struct{}, len(rows))
	byFolder := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		line := i + 2 // header is line 1
		if row.Folder == "" {
			problems = append(problems, fmt.Sprintf("line %d: Folder is empty", line))
			continue
		}
		if _, dup := seen[row.Folder]; dup {
			problems = append(problems, fmt.Sprintf("line %d: duplicate Folder %q", line, row.Folder))
		}
		seen[row.Folder] = struct{}{}
		byFolder[row.Folder] = struct{}{}
		if _, ok := allowed[strings.ToLower(row.Department)]; !ok {
			problems = append(problems, fmt.Sprintf("line %d: department %q is not in the configured allow-list", line, row.Department))
		}
		if row.AIPID == "" {
			problems = append(problems, fmt.Sprintf("line %d: AIP_ID is empty", line))
		}
	}

	onDisk := make(map[string]struct{}, len(folders))
	for _, folder := range folders {
		onDisk[folder] = struct{}{}
		if _, ok := byFolder[folder]; !ok {
			problems = append(problems, fmt.Sprintf("folder %q present in the batch but missing from metadata.csv", folder))
		}
	}
	for _, row := range rows {
		if row.Folder == "" {
			continue
		}
		if _, ok := onDisk[row.Folder]; !ok {
			problems = append(problems, fmt.Sprintf("metadata.csv row for %q has no matching folder in the batch", row.Folder))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("metadata.csv validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// ManifestIndex keys manifest rows by folder name for per-AIP lookup.
func ManifestIndex(rows []ManifestRow) map[string]ManifestRow {
	index := make(map[string]ManifestRow, len(rows))
	for _, row := range rows {
		index[row.Folder] = row
	}
	return index
}
