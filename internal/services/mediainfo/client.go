// Package mediainfo wraps the MediaInfo CLI, the pipeline's technical
// metadata extractor.
package mediainfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"bindery/internal/services"
)

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom command runner (primarily for tests).
func WithRunner(runner services.CommandRunner) Option {
	return func(c *Client) {
		if runner != nil {
			c.run = runner
		}
	}
}

// Client wraps MediaInfo CLI interactions.
type Client struct {
	binary string
	run    services.CommandRunner
}

// New constructs a MediaInfo client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mediainfo binary required")
	}
	client := &Client{binary: binary, run: services.NewCommandRunner()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Extract runs MediaInfo against the objects folder and writes the XML
// report to outputPath. The full output form with raw language keeps sizes
// in bytes, which the preservation transform depends on.
func (c *Client) Extract(ctx context.Context, objectsDir, outputPath string) error {
	result, err := c.run.Run(ctx, c.binary, "-f", "--Output=XML", "--Language=raw", objectsDir)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "extract", "run mediainfo", "", err)
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "extract", "run mediainfo",
			fmt.Sprintf("exit code %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr)), nil)
	}
	if err := os.WriteFile(outputPath, []byte(result.Stdout), 0o644); err != nil {
		return fmt.Errorf("write mediainfo output: %w", err)
	}
	return nil
}
