package main

import (
	"testing"

	"bindery/internal/testsupport"
)

func TestCheckCommandReportsAvailability(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"check"}, configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "MediaInfo")
	requireContains(t, out, "Saxon jar")
	requireContains(t, out, "All dependency checks passed.")
}

func TestCheckCommandFailsOnMissingBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("mediainfo", "java", "xmllint", "bagit.py"))
	cfg.Tools.Archiver = "definitely-not-on-path"
	configPath := writeTestConfig(t, cfg)

	_, _, err := runCLI(t, []string{"check"}, configPath)
	if err == nil {
		t.Fatal("expected check to fail with a missing binary")
	}
}
