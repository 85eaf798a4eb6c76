package deps

import (
	"path/filepath"
	"testing"

	"bindery/internal/testsupport"
)

func TestCheckBinariesResolvesStubsOnPath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	for _, status := range CheckBinaries(Requirements(cfg)) {
		if !status.Available {
			t.Errorf("%s (%s) unavailable: %s", status.Name, status.Command, status.Detail)
		}
	}
}

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "archiver", Command: "definitely-not-on-path"},
		{Name: "unset", Command: ""},
		{Name: "by-path", Command: filepath.Join(t.TempDir(), "missing-tool")},
	})
	for _, status := range statuses {
		if status.Available {
			t.Errorf("%s unexpectedly available", status.Name)
		}
		if status.Detail == "" {
			t.Errorf("%s has no failure detail", status.Name)
		}
	}
}

func TestCheckFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	for _, status := range CheckFiles(cfg) {
		if !status.Available {
			t.Errorf("%s unavailable: %s", status.Name, status.Detail)
		}
	}

	cfg.Metadata.Schema = filepath.Join(t.TempDir(), "absent.xsd")
	found := false
	for _, status := range CheckFiles(cfg) {
		if status.Name == "Schema" {
			found = true
			if status.Available {
				t.Error("missing schema reported available")
			}
		}
	}
	if !found {
		t.Fatal("schema check missing from results")
	}
}

func TestCheckBatchRoot(t *testing.T) {
	root := t.TempDir()
	status := CheckBatchRoot(root, 0)
	if !status.Available {
		t.Fatalf("writable temp dir reported unavailable: %s", status.Detail)
	}

	status = CheckBatchRoot(filepath.Join(root, "absent"), 0)
	if status.Available {
		t.Fatal("missing directory reported available")
	}
}
