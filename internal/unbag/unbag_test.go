package unbag

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bindery/internal/logging"
	"bindery/internal/services"
	"bindery/internal/services/bagit"
	"bindery/internal/testsupport"
)

func newBag(t *testing.T) string {
	t.Helper()
	bag := filepath.Join(t.TempDir(), "transfer_bag")
	for _, meta := range []string{"bagit.txt", "bag-info.txt", "manifest-md5.txt", "tagmanifest-md5.txt"} {
		testsupport.WriteFile(t, filepath.Join(bag, meta), "metadata")
	}
	testsupport.WriteFile(t, filepath.Join(bag, "data", "rbrl390", "interview.mov"), "video")
	testsupport.WriteFile(t, filepath.Join(bag, "data", "har-ua12-005_board-files", "minutes.pdf"), "pdf")
	return bag
}

func newClient(t *testing.T, runner services.CommandRunner) *bagit.Client {
	t.Helper()
	client, err := bagit.New("bagit.py", bagit.WithRunner(runner))
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestFlattenUnpacksValidBag(t *testing.T) {
	bag := newBag(t)
	runner := testsupport.NewStubRunner()

	if err := Flatten(context.Background(), bag, newClient(t, runner), logging.NewNop()); err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}

	entries, err := os.ReadDir(bag)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	if len(names) != 2 {
		t.Fatalf("entries = %v, want only the AIP folders", names)
	}
	if _, err := os.Stat(filepath.Join(bag, "rbrl390", "interview.mov")); err != nil {
		t.Fatalf("payload not moved up: %v", err)
	}
	if _, err := os.Stat(filepath.Join(bag, "data")); !os.IsNotExist(err) {
		t.Fatal("data folder still present")
	}

	calls := runner.CallsFor("bagit.py")
	if len(calls) != 1 || calls[0].ArgString() != "--validate --quiet "+bag {
		t.Fatalf("unexpected validation invocation: %v", calls)
	}
}

func TestFlattenLeavesInvalidBagUntouched(t *testing.T) {
	bag := newBag(t)
	runner := testsupport.NewStubRunner().Respond("bagit.py", testsupport.StubResponse{
		Result: services.CommandResult{ExitCode: 1, Stderr: "data/rbrl390/interview.mov md5 mismatch"},
	})

	err := Flatten(context.Background(), bag, newClient(t, runner), logging.NewNop())
	if err == nil || !strings.Contains(err.Error(), "transfer bag is not valid") {
		t.Fatalf("Flatten error = %v, want validation failure", err)
	}
	if !strings.Contains(err.Error(), "md5 mismatch") {
		t.Fatalf("error missing diagnostics: %v", err)
	}

	// Untouched for inspection and a fresh transfer.
	if _, err := os.Stat(filepath.Join(bag, "bagit.txt")); err != nil {
		t.Fatalf("bag metadata removed despite invalid bag: %v", err)
	}
	if _, err := os.Stat(filepath.Join(bag, "data", "rbrl390", "interview.mov")); err != nil {
		t.Fatalf("payload moved despite invalid bag: %v", err)
	}
}
