// Package saxon wraps the Saxon XSLT processor, the pipeline's metadata
// transform engine. Saxon runs on the JVM, so the client is configured with
// both a java binary and the Saxon jar.
package saxon

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// Client wraps Saxon CLI interactions.
type Client struct {
	java string
	jar  string
	run  services.CommandRunner
}

// New constructs a Saxon client.
func New(java, jar string, opts ...Option) (*Client, error) {
	java = strings.TrimSpace(java)
	jar = strings.TrimSpace(jar)
	if java == "" {
		return nil, errors.New("java binary required")
	}
	if jar == "" {
		return nil, errors.New("saxon jar required")
	}
	client := &Client{java: java, jar: jar, run: services.NewCommandRunner()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Transform applies the stylesheet to source, writing the derived document
// to output. params become stylesheet parameters, passed in sorted key order
// so invocations are deterministic.
func (c *Client) Transform(ctx context.Context, source, stylesheet, output string, params map[string]string) error {
	args := []string{
		"-cp", c.jar,
		"net.sf.saxon.Transform",
		"-s:" + source,
		"-xsl:" + stylesheet,
		"-o:" + output,
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, key+"="+params[key])
	}

	result, err := c.run.Run(ctx, c.java, args...)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "preserve", "run saxon", "", err)
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "preserve", "run saxon",
			fmt.Sprintf("exit code %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr)), nil)
	}
	return nil
}
