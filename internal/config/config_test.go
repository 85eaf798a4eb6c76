package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadAppliesDefaultsAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeConfigFile(t, path, `
[tools]
saxon_jar = "`+filepath.Join(dir, "saxon.jar")+`"

[metadata]
stylesheet = "`+filepath.Join(dir, "transform.xsl")+`"
schema = "`+filepath.Join(dir, "preservation.xsd")+`"
namespace = "https://archive.example.edu/preservation"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q, exists = %v", resolved, exists)
	}
	if cfg.Tools.MediaInfo != "mediainfo" || cfg.Tools.BagIt != "bagit.py" {
		t.Fatalf("tool defaults not applied: %+v", cfg.Tools)
	}
	if cfg.Pipeline.MinFreeGiB != 10 || !cfg.Pipeline.LedgerEnabled {
		t.Fatalf("pipeline defaults not applied: %+v", cfg.Pipeline)
	}
	if len(cfg.Pipeline.Departments) != 2 {
		t.Fatalf("departments = %v", cfg.Pipeline.Departments)
	}
	if !filepath.IsAbs(cfg.Logging.Dir) {
		t.Fatalf("logging dir not expanded: %q", cfg.Logging.Dir)
	}
}

func TestLoadRequiresSaxonJar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfigFile(t, path, `
[metadata]
stylesheet = "/opt/transform.xsl"
schema = "/opt/preservation.xsd"
namespace = "ns"
`)

	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "tools.saxon_jar is required") {
		t.Fatalf("Load error = %v, want saxon_jar requirement", err)
	}
}

func TestValidateRejectsUnknownDepartment(t *testing.T) {
	cfg := Default()
	cfg.Tools.SaxonJar = "/opt/saxon.jar"
	cfg.Metadata = Metadata{Stylesheet: "/opt/t.xsl", Schema: "/opt/s.xsd", Namespace: "ns"}
	cfg.Pipeline.Departments = []string{"russell", "manuscripts"}
	cfg.Logging.Dir = "/tmp/logs"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), `unknown department "manuscripts"`) {
		t.Fatalf("Validate error = %v", err)
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := Default()
	cfg.Tools.SaxonJar = "/opt/saxon.jar"
	cfg.Metadata = Metadata{Stylesheet: "/opt/t.xsl", Schema: "/opt/s.xsd", Namespace: "ns"}
	cfg.Logging.Dir = "/tmp/logs"

	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected format rejection")
	}
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "trace"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected level rejection")
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	var cfg Config
	if err := toml.Unmarshal([]byte(Sample()), &cfg); err != nil {
		t.Fatalf("embedded sample does not parse: %v", err)
	}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("embedded sample does not normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded sample does not validate: %v", err)
	}
}
