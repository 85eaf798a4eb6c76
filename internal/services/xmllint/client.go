// Package xmllint wraps the xmllint schema validator.
package xmllint

import (
	"context"
	"errors"
	"strings"

	"bindery/internal/services"
)

// Report is the structured outcome of a validation attempt. The two failure
// modes the pipeline treats as equivalent are a document that could not be
// loaded and a document that fails schema validation; both leave Valid false.
type Report struct {
	Valid      bool
	LoadFailed bool
	// Diagnostics holds the validator's stderr reformatted one message per
	// entry for sidecar files.
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

// Client wraps xmllint CLI interactions.
type Client struct {
	binary string
	run    services.CommandRunner
}

// New constructs an xmllint client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("xmllint binary required")
	}
	client := &Client{binary: binary, run: services.NewCommandRunner()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Validate checks document against schema. Failure is classified by exit
// status first; the substring inspection below is a fallback heuristic tied
// to xmllint's message format (see the pinning test) and only distinguishes
// the load-failure mode.
func (c *Client) Validate(ctx context.Context, schema, document string) (Report, error) {
	result, err := c.run.Run(ctx, c.binary, "--noout", "-schema", schema, document)
	if err != nil {
		return Report{}, services.Wrap(services.ErrExternalTool, "preserve", "run xmllint", "", err)
	}

	report := Report{
		Valid:       result.ExitCode == 0,
		Diagnostics: result.StderrLines(),
		Raw:         result.Stderr,
	}
	if !report.Valid {
		report.LoadFailed = classifyLoadFailure(result.Stderr)
	}
	return report, nil
}

// classifyLoadFailure inspects xmllint stderr for its load-failure phrasing.
// xmllint exit codes do not distinguish a missing/unparseable document from a
// schema violation, so this heuristic fills the gap.
func classifyLoadFailure(stderr string) bool {
	return strings.Contains(stderr, "failed to load")
}
