// Package testsupport provides shared helpers for constructing test
// configurations, fixture files, and stubbed command runners.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test. The
// saxon jar, stylesheet, and schema point at real (placeholder) files so the
// config passes validation and dependency checks.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Tools.SaxonJar = filepath.Join(base, "saxon.jar")
	cfgVal.Metadata.Stylesheet = filepath.Join(base, "mediainfo-to-preservation.xsl")
	cfgVal.Metadata.Schema = filepath.Join(base, "preservation.xsd")
	cfgVal.Metadata.Namespace = "https://archive.example.edu/preservation"
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	for _, path := range []string{cfgVal.Tools.SaxonJar, cfgVal.Metadata.Stylesheet, cfgVal.Metadata.Schema} {
		if err := os.WriteFile(path, []byte("placeholder\n"), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", path, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDepartments overrides the department allow-list on the test config.
func WithDepartments(departments ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.Departments = departments
	}
}

// WithLedgerDisabled turns off the run ledger on the test config.
func WithLedgerDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.LedgerEnabled = false
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default bindery external
// binaries are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"mediainfo", "java", "xmllint", "bagit.py", "prepare_bag"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Tools.SaxonJar)
}
