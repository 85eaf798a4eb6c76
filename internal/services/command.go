package services

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// CommandResult carries the observable outcome of an external tool run.
// ExitCode is the primary failure signal; Stderr is preserved verbatim for
// diagnostics and for the documented text-inspection fallbacks.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, binary string, args ...string) (CommandResult, error)
}

// NewCommandRunner returns the production runner backed by os/exec.
func NewCommandRunner() CommandRunner {
	return execRunner{}
}

type execRunner struct{}

// Run executes the binary and waits for completion. A non-zero exit is not an
// error: it is reported through CommandResult.ExitCode so callers can
// classify tool outcomes. Run returns an error only when the command could
// not be started or was interrupted by context cancellation.
func (execRunner) Run(ctx context.Context, binary string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, err
	}
	return result, nil
}

// StderrLines splits captured stderr into trimmed, non-empty lines for
// one-message-per-line sidecar formatting.
func (r CommandResult) StderrLines() []string {
	return splitDiagnostics(r.Stderr, "\n")
}

func splitDiagnostics(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// SplitDiagnostics splits raw tool output on the given separator and trims
// blanks; bag validation output separates messages with semicolons.
func SplitDiagnostics(raw, sep string) []string {
	return splitDiagnostics(raw, sep)
}
