package restructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/aip"
	"bindery/internal/services"
	"bindery/internal/testsupport"
)

func TestExecuteBuildsCanonicalLayout(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "rbrl390")
	testsupport.WriteFile(t, filepath.Join(folder, "interview.mov"), "video")
	testsupport.WriteFile(t, filepath.Join(folder, "scans", "page1.pdf"), "scan")

	item := &aip.Item{Folder: "rbrl390"}
	if err := New(root).Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(folder, "objects", "interview.mov")); err != nil {
		t.Fatalf("payload not moved into objects: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folder, "objects", "scans", "page1.pdf")); err != nil {
		t.Fatalf("nested payload not moved into objects: %v", err)
	}
	info, err := os.Stat(filepath.Join(folder, "metadata"))
	if err != nil || !info.IsDir() {
		t.Fatalf("metadata folder missing: %v", err)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected exactly objects and metadata, got %d entries", len(entries))
	}
}

func TestExecuteDivertsOnPreexistingObjects(t *testing.T) {
	root := t.TempDir()
	folder := filepath.Join(root, "rbrl391")
	testsupport.MkdirAll(t, filepath.Join(folder, "objects"))
	testsupport.WriteFile(t, filepath.Join(folder, "interview.mov"), "video")

	item := &aip.Item{Folder: "rbrl391"}
	err := New(root).Execute(context.Background(), item)
	divert, ok := services.AsDivert(err)
	if !ok {
		t.Fatalf("expected Divert, got %v", err)
	}
	if divert.Kind != aip.ErrPreexistingObjects {
		t.Fatalf("kind = %q, want %q", divert.Kind, aip.ErrPreexistingObjects)
	}

	// The payload must be untouched so the operator can inspect the folder.
	if _, err := os.Stat(filepath.Join(folder, "interview.mov")); err != nil {
		t.Fatalf("payload moved despite divert: %v", err)
	}
}

func TestExecuteRenamesToCanonicalName(t *testing.T) {
	root := t.TempDir()
	source := "har-ua12-005_board-meeting-files"
	testsupport.WriteFile(t, filepath.Join(root, source, "minutes.pdf"), "pdf")

	item := &aip.Item{
		SourceFolder:    source,
		Folder:          source,
		CanonicalFolder: "har-ua12-005",
	}
	if err := New(root).Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if item.Folder != "har-ua12-005" {
		t.Fatalf("item folder = %q, want canonical name", item.Folder)
	}
	if _, err := os.Stat(filepath.Join(root, "har-ua12-005", "objects", "minutes.pdf")); err != nil {
		t.Fatalf("renamed folder missing payload: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, source)); !os.IsNotExist(err) {
		t.Fatal("original folder name still present after rename")
	}
}
