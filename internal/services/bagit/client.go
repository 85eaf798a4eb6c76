// Package bagit wraps the bagit.py packaging tool.
package bagit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bindery/internal/services"
)

// Report is the structured outcome of bag validation.
type Report struct {
	Valid bool
	// Diagnostics holds the validator's messages, one per entry. bagit.py
	// separates messages with semicolons.
	Diagnostics []string
	Raw         string
}

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

// Client wraps bagit.py CLI interactions.
type Client struct {
	binary string
	run    services.CommandRunner
}

// New constructs a bagit client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("bagit binary required")
	}
	client := &Client{binary: binary, run: services.NewCommandRunner()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// MakeBag bags the folder in place with both md5 and sha256 payload
// manifests for tamper-evidence.
func (c *Client) MakeBag(ctx context.Context, dir string) error {
	result, err := c.run.Run(ctx, c.binary, "--md5", "--sha256", "--quiet", dir)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "package", "run bagit", "", err)
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "package", "run bagit",
			fmt.Sprintf("exit code %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr)), nil)
	}
	return nil
}

// Validate checks an existing bag. A non-zero exit is an invalid bag, not an
// invocation error.
func (c *Client) Validate(ctx context.Context, dir string) (Report, error) {
	result, err := c.run.Run(ctx, c.binary, "--validate", "--quiet", dir)
	if err != nil {
		return Report{}, services.Wrap(services.ErrExternalTool, "package", "validate bag", "", err)
	}
	return Report{
		Valid:       result.ExitCode == 0,
		Diagnostics: services.SplitDiagnostics(result.Stderr, ";"),
		Raw:         result.Stderr,
	}, nil
}
