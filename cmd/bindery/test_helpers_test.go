package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bindery/internal/config"
	"bindery/internal/testsupport"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	content := fmt.Sprintf(
		"[tools]\nmediainfo = %q\njava = %q\nxmllint = %q\nbagit = %q\narchiver = %q\nsaxon_jar = %q\n\n[metadata]\nstylesheet = %q\nschema = %q\nnamespace = %q\n\n[logging]\ndir = %q\n",
		cfg.Tools.MediaInfo,
		cfg.Tools.Java,
		cfg.Tools.XMLLint,
		cfg.Tools.BagIt,
		cfg.Tools.Archiver,
		cfg.Tools.SaxonJar,
		cfg.Metadata.Stylesheet,
		cfg.Metadata.Schema,
		cfg.Metadata.Namespace,
		cfg.Logging.Dir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
