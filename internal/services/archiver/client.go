// Package archiver wraps the external archive/compress utility. Given a bag
// folder and a destination, it produces a single compressed artifact named
// after the bag and annotated with the uncompressed size.
package archiver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
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

// Client wraps archive utility interactions.
type Client struct {
	command string
	run     services.CommandRunner
}

// New constructs an archiver client.
func New(command string, opts ...Option) (*Client, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, errors.New("archiver command required")
	}
	client := &Client{command: command, run: services.NewCommandRunner()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Archive compresses bagDir into destDir and returns the artifact's path.
// The utility chooses the exact filename (it embeds the uncompressed size),
// so the produced artifact is located by its bag-name prefix.
func (c *Client) Archive(ctx context.Context, bagDir, destDir string) (string, error) {
	result, err := c.run.Run(ctx, c.command, bagDir, destDir)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "package", "run archiver", "", err)
	}
	if result.ExitCode != 0 {
		return "", services.Wrap(services.ErrExternalTool, "package", "run archiver",
			fmt.Sprintf("exit code %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr)), nil)
	}

	artifact, err := findArtifact(destDir, filepath.Base(bagDir))
	if err != nil {
		return "", err
	}
	return artifact, nil
}

func findArtifact(destDir, bagName string) (string, error) {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return "", fmt.Errorf("read staging folder: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), bagName) {
			return filepath.Join(destDir, entry.Name()), nil
		}
	}
	return "", services.Wrap(services.ErrExternalTool, "package", "locate artifact",
		fmt.Sprintf("no artifact for %s in staging folder", bagName), nil)
}
