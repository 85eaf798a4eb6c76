package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeTools(); err != nil {
		return err
	}
	if err := c.normalizeMetadata(); err != nil {
		return err
	}
	c.normalizePipeline()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeTools() error {
	c.Tools.MediaInfo = strings.TrimSpace(c.Tools.MediaInfo)
	if c.Tools.MediaInfo == "" {
		c.Tools.MediaInfo = defaultMediaInfoCommand
	}
	c.Tools.Java = strings.TrimSpace(c.Tools.Java)
	if c.Tools.Java == "" {
		c.Tools.Java = defaultJavaCommand
	}
	c.Tools.XMLLint = strings.TrimSpace(c.Tools.XMLLint)
	if c.Tools.XMLLint == "" {
		c.Tools.XMLLint = defaultXMLLintCommand
	}
	c.Tools.BagIt = strings.TrimSpace(c.Tools.BagIt)
	if c.Tools.BagIt == "" {
		c.Tools.BagIt = defaultBagItCommand
	}
	c.Tools.Archiver = strings.TrimSpace(c.Tools.Archiver)
	if c.Tools.Archiver == "" {
		c.Tools.Archiver = defaultArchiverCommand
	}

	var err error
	if c.Tools.SaxonJar = strings.TrimSpace(c.Tools.SaxonJar); c.Tools.SaxonJar != "" {
		if c.Tools.SaxonJar, err = expandPath(c.Tools.SaxonJar); err != nil {
			return fmt.Errorf("tools.saxon_jar: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeMetadata() error {
	var err error
	if c.Metadata.Stylesheet = strings.TrimSpace(c.Metadata.Stylesheet); c.Metadata.Stylesheet != "" {
		if c.Metadata.Stylesheet, err = expandPath(c.Metadata.Stylesheet); err != nil {
			return fmt.Errorf("metadata.stylesheet: %w", err)
		}
	}
	if c.Metadata.Schema = strings.TrimSpace(c.Metadata.Schema); c.Metadata.Schema != "" {
		if c.Metadata.Schema, err = expandPath(c.Metadata.Schema); err != nil {
			return fmt.Errorf("metadata.schema: %w", err)
		}
	}
	c.Metadata.Namespace = strings.TrimSpace(c.Metadata.Namespace)
	return nil
}

func (c *Config) normalizePipeline() {
	departments := make([]string, 0, len(c.Pipeline.Departments))
	for _, dept := range c.Pipeline.Departments {
		if trimmed := strings.ToLower(strings.TrimSpace(dept)); trimmed != "" {
			departments = append(departments, trimmed)
		}
	}
	c.Pipeline.Departments = departments
	if c.Pipeline.MinFreeGiB <= 0 {
		c.Pipeline.MinFreeGiB = defaultMinFreeGiB
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Dir = strings.TrimSpace(c.Logging.Dir)
	if c.Logging.Dir == "" {
		c.Logging.Dir = defaultLogDir
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
