package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"bindery/internal/config"
)

// Requirement defines an external dependency the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the external tool checklist from configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "MediaInfo", Command: cfg.Tools.MediaInfo, Description: "technical metadata extraction"},
		{Name: "Java", Command: cfg.Tools.Java, Description: "runs the Saxon XSLT processor"},
		{Name: "xmllint", Command: cfg.Tools.XMLLint, Description: "schema validation"},
		{Name: "bagit.py", Command: cfg.Tools.BagIt, Description: "bagging and bag validation"},
		{Name: "archiver", Command: cfg.Tools.Archiver, Description: "tars and compresses bags"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if strings.ContainsRune(cmd, os.PathSeparator) {
			if _, err := os.Stat(cmd); err != nil {
				status.Detail = fmt.Sprintf("path %q not found", cmd)
				results = append(results, status)
				continue
			}
		} else if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckFiles verifies that the transform inputs exist on disk.
func CheckFiles(cfg *config.Config) []Status {
	checks := []struct {
		name string
		path string
		desc string
	}{
		{"Saxon jar", cfg.Tools.SaxonJar, "XSLT processor jar"},
		{"Stylesheet", cfg.Metadata.Stylesheet, "MediaInfo to preservation transform"},
		{"Schema", cfg.Metadata.Schema, "preservation document schema"},
	}
	results := make([]Status, 0, len(checks))
	for _, check := range checks {
		status := Status{Name: check.name, Command: check.path, Description: check.desc}
		if strings.TrimSpace(check.path) == "" {
			status.Detail = "path not configured"
		} else if info, err := os.Stat(check.path); err != nil {
			status.Detail = fmt.Sprintf("%s not found", filepath.Base(check.path))
		} else if info.IsDir() {
			status.Detail = "expected a file, found a directory"
		} else {
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
