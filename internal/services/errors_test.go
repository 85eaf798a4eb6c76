package services

import (
	"errors"
	"fmt"
	"testing"

	"bindery/internal/aip"
)

func TestWrapTagsMarkerAndChainsCause(t *testing.T) {
	cause := errors.New("exit status 2")
	err := Wrap(ErrExternalTool, "extract", "run mediainfo", "exit code 2", cause)

	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("marker not preserved in chain")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not preserved in chain")
	}
	want := "external tool error: extract: run mediainfo: exit code 2: exit status 2"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatal("nil marker should default to ErrTransient")
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestAsDivertThroughWrappedChain(t *testing.T) {
	inner := &Divert{Kind: aip.ErrBagInvalid, Diagnostics: []string{"md5 mismatch"}}
	wrapped := fmt.Errorf("stage failed: %w", inner)

	divert, ok := AsDivert(wrapped)
	if !ok {
		t.Fatal("Divert not found through wrapping")
	}
	if divert.Kind != aip.ErrBagInvalid {
		t.Fatalf("kind = %q", divert.Kind)
	}

	if _, ok := AsDivert(errors.New("plain")); ok {
		t.Fatal("plain error misidentified as Divert")
	}
}

func TestSplitDiagnostics(t *testing.T) {
	got := SplitDiagnostics(" first; second ;; third;", ";")
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStderrLines(t *testing.T) {
	result := CommandResult{Stderr: "line one\n\n  line two  \n"}
	lines := result.StderrLines()
	if len(lines) != 2 || lines[0] != "line one" || lines[1] != "line two" {
		t.Fatalf("lines = %v", lines)
	}
}
