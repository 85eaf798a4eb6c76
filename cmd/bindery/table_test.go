package main

import (
	"strings"
	"testing"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Dependency", "Available"},
		[][]string{{"mediainfo", "yes"}, {"java"}},
	)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 rendered lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Dependency") || !strings.Contains(lines[1], "Available") {
		t.Fatalf("expected header line, got %q", lines[1])
	}
	if !strings.Contains(out, "mediainfo") || !strings.Contains(out, "java") {
		t.Fatalf("expected both rows rendered:\n%s", out)
	}
}

func TestRenderTableRightAlignsRequestedColumn(t *testing.T) {
	out := renderTable(
		[]string{"#", "Folder"},
		[][]string{{"1", "first"}, {"10", "second"}},
		1,
	)
	if !strings.Contains(out, "│  1 │") {
		t.Fatalf("expected right-aligned counter column:\n%s", out)
	}
	if !strings.Contains(out, "│ 10 │") {
		t.Fatalf("expected two-digit counter flush right:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if got := renderTable(nil, nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
