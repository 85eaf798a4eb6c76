package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownDepartments = map[string]struct{}{
	"russell":  {},
	"hargrett": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateMetadata(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.SaxonJar == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/bindery/config.toml"
		}
		return fmt.Errorf("tools.saxon_jar is required. Edit %s (create with 'bindery config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateMetadata() error {
	if c.Metadata.Stylesheet == "" {
		return errors.New("metadata.stylesheet must be set")
	}
	if c.Metadata.Schema == "" {
		return errors.New("metadata.schema must be set")
	}
	if c.Metadata.Namespace == "" {
		return errors.New("metadata.namespace must be set")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if len(c.Pipeline.Departments) == 0 {
		return errors.New("pipeline.departments must list at least one department")
	}
	for _, dept := range c.Pipeline.Departments {
		if _, ok := knownDepartments[dept]; !ok {
			return fmt.Errorf("pipeline.departments: unknown department %q", dept)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		return errors.New("logging.dir must be set")
	}
	return nil
}
