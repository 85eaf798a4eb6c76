package testsupport

import (
	"context"
	"strings"
	"sync"

	"bindery/internal/services"
)

// StubCall records a single invocation observed by a StubRunner.
type StubCall struct {
	Binary string
	Args   []string
}

// StubResponse is the canned outcome a StubRunner returns for a matching
// invocation.
type StubResponse struct {
	Result services.CommandResult
	Err    error
	// Handle, when set, runs before the response is returned so tests can
	// create the output files a real tool would have produced.
	Handle func(call StubCall)
}

// StubRunner implements services.CommandRunner with canned responses keyed
// by binary name. Unmatched binaries succeed with an empty result.
type StubRunner struct {
	mu        sync.Mutex
	responses map[string]StubResponse
	calls     []StubCall
}

// NewStubRunner returns an empty StubRunner.
func NewStubRunner() *StubRunner {
	return &StubRunner{responses: make(map[string]StubResponse)}
}

// Respond registers the response returned whenever binary is invoked.
func (s *StubRunner) Respond(binary string, resp StubResponse) *StubRunner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[binary] = resp
	return s
}

// Run implements services.CommandRunner.
func (s *StubRunner) Run(ctx context.Context, binary string, args ...string) (services.CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return services.CommandResult{}, err
	}

	call := StubCall{Binary: binary, Args: append([]string(nil), args...)}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	resp, ok := s.responses[binary]
	s.mu.Unlock()

	if !ok {
		return services.CommandResult{}, nil
	}
	if resp.Handle != nil {
		resp.Handle(call)
	}
	return resp.Result, resp.Err
}

// Calls returns a copy of every invocation observed so far.
func (s *StubRunner) Calls() []StubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StubCall(nil), s.calls...)
}

// CallsFor returns the invocations observed for a single binary.
func (s *StubRunner) CallsFor(binary string) []StubCall {
	var matched []StubCall
	for _, call := range s.Calls() {
		if call.Binary == binary {
			matched = append(matched, call)
		}
	}
	return matched
}

// ArgString joins a call's arguments with spaces for loose matching in tests.
func (c StubCall) ArgString() string {
	return strings.Join(c.Args, " ")
}
