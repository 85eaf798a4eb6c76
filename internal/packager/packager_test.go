package packager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/aip"
	"bindery/internal/logging"
	"bindery/internal/services"
	"bindery/internal/services/archiver"
	"bindery/internal/services/bagit"
	"bindery/internal/testsupport"
)

type fixture struct {
	root    string
	staging string
	runner  *testsupport.StubRunner
	handler *Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	staging := filepath.Join(root, "aips-to-ingest")
	testsupport.MkdirAll(t, staging)

	runner := testsupport.NewStubRunner()
	bagitClient, err := bagit.New("bagit.py", bagit.WithRunner(runner))
	if err != nil {
		t.Fatal(err)
	}
	archiverClient, err := archiver.New("prepare_bag", archiver.WithRunner(runner))
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{
		root:    root,
		staging: staging,
		runner:  runner,
		handler: New(root, staging, bagitClient, archiverClient, logging.NewNop()),
	}
}

func (f *fixture) newItem(t *testing.T, folder, id string) *aip.Item {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(f.root, folder, "objects", "interview.mov"), "video")
	testsupport.WriteFile(t, filepath.Join(f.root, folder, "metadata", id+"_mediainfo.xml"), "<MediaInfo/>")
	return &aip.Item{SourceFolder: folder, Folder: folder, ID: id}
}

func TestExecutePackagesAndArchives(t *testing.T) {
	f := newFixture(t)
	item := f.newItem(t, "rbrl390", "rbrl390_media")
	testsupport.WriteFile(t, filepath.Join(f.root, "rbrl390", "objects", ".DS_Store"), "junk")

	f.runner.Respond("prepare_bag", testsupport.StubResponse{
		Handle: func(call testsupport.StubCall) {
			testsupport.WriteFile(t, filepath.Join(f.staging, "rbrl390_media_bag.1000.tar.bz2"), "artifact")
		},
	})

	if err := f.handler.Execute(context.Background(), item); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if item.Folder != "rbrl390_media_bag" {
		t.Fatalf("folder = %q, want bag name", item.Folder)
	}
	if _, err := os.Stat(filepath.Join(f.root, "rbrl390_media_bag")); err != nil {
		t.Fatalf("bag folder missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.root, "rbrl390_media_bag", "objects", ".DS_Store")); !os.IsNotExist(err) {
		t.Fatal("OS artifact survived scrubbing")
	}
	if _, err := os.Stat(filepath.Join(f.staging, "rbrl390_media_bag.1000.tar.bz2")); err != nil {
		t.Fatalf("artifact missing from staging: %v", err)
	}

	bagitCalls := f.runner.CallsFor("bagit.py")
	if len(bagitCalls) != 2 {
		t.Fatalf("bagit invoked %d times, want bag then validate", len(bagitCalls))
	}
	archiveCalls := f.runner.CallsFor("prepare_bag")
	want := filepath.Join(f.root, "rbrl390_media_bag") + " " + f.staging
	if len(archiveCalls) != 1 || archiveCalls[0].ArgString() != want {
		t.Fatalf("archiver invocation = %v, want %q", archiveCalls, want)
	}
}

func TestExecuteInvalidBagDiverts(t *testing.T) {
	f := newFixture(t)
	item := f.newItem(t, "rbrl390", "rbrl390_media")

	f.runner.Respond("bagit.py", testsupport.StubResponse{
		Result: services.CommandResult{ExitCode: 1, Stderr: "data/interview.mov md5 mismatch"},
	})

	err := f.handler.Execute(context.Background(), item)
	divert, ok := services.AsDivert(err)
	if !ok {
		t.Fatalf("expected Divert, got %v", err)
	}
	if divert.Kind != aip.ErrBagInvalid {
		t.Fatalf("kind = %q, want %q", divert.Kind, aip.ErrBagInvalid)
	}
	if divert.Sidecar != "rbrl390_media_bag_validation_error.txt" {
		t.Fatalf("sidecar = %q", divert.Sidecar)
	}
	if len(divert.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", divert.Diagnostics)
	}
	if len(f.runner.CallsFor("prepare_bag")) != 0 {
		t.Fatal("archiver ran despite invalid bag")
	}
}

func TestExecuteArchiveFailureDiverts(t *testing.T) {
	f := newFixture(t)
	item := f.newItem(t, "rbrl390", "rbrl390_media")

	f.runner.Respond("prepare_bag", testsupport.StubResponse{
		Result: services.CommandResult{ExitCode: 1, Stderr: "bzip2: disk full"},
	})

	err := f.handler.Execute(context.Background(), item)
	divert, ok := services.AsDivert(err)
	if !ok {
		t.Fatalf("expected Divert, got %v", err)
	}
	if divert.Kind != aip.ErrArchiveFailed {
		t.Fatalf("kind = %q, want %q", divert.Kind, aip.ErrArchiveFailed)
	}
}

func TestExecuteMissingArtifactDiverts(t *testing.T) {
	f := newFixture(t)
	item := f.newItem(t, "rbrl390", "rbrl390_media")

	// Archiver exits 0 but produces nothing in staging.
	err := f.handler.Execute(context.Background(), item)
	divert, ok := services.AsDivert(err)
	if !ok {
		t.Fatalf("expected Divert, got %v", err)
	}
	if divert.Kind != aip.ErrArchiveFailed {
		t.Fatalf("kind = %q, want %q", divert.Kind, aip.ErrArchiveFailed)
	}
}
