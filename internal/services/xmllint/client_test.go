package xmllint

import (
	"context"
	"testing"

	"bindery/internal/services"
	"bindery/internal/testsupport"
)

func newClient(t *testing.T, runner services.CommandRunner) *Client {
	t.Helper()
	client, err := New("xmllint", WithRunner(runner))
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestValidateExitZeroIsValid(t *testing.T) {
	runner := testsupport.NewStubRunner().Respond("xmllint", testsupport.StubResponse{
		Result: services.CommandResult{ExitCode: 0, Stderr: "doc.xml validates"},
	})

	report, err := newClient(t, runner).Validate(context.Background(), "schema.xsd", "doc.xml")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !report.Valid {
		t.Fatal("exit 0 must classify as valid")
	}
	if report.LoadFailed {
		t.Fatal("valid document flagged as load failure")
	}

	calls := runner.CallsFor("xmllint")
	if len(calls) != 1 || calls[0].ArgString() != "--noout -schema schema.xsd doc.xml" {
		t.Fatalf("unexpected invocation: %v", calls)
	}
}

func TestValidateSchemaViolation(t *testing.T) {
	runner := testsupport.NewStubRunner().Respond("xmllint", testsupport.StubResponse{
		Result: services.CommandResult{
			ExitCode: 3,
			Stderr:   "doc.xml:4: element size: Schemas validity error\ndoc.xml fails to validate\n",
		},
	})

	report, err := newClient(t, runner).Validate(context.Background(), "schema.xsd", "doc.xml")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if report.Valid {
		t.Fatal("non-zero exit must classify as invalid")
	}
	if report.LoadFailed {
		t.Fatal("schema violation misclassified as load failure")
	}
	if len(report.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %v", report.Diagnostics)
	}
}

// xmllint's exit codes do not distinguish an unloadable document from a
// schema violation; classification leans on the "failed to load" phrasing in
// stderr. This test pins that dependency so an xmllint message change shows
// up as a test failure rather than silent misclassification.
func TestValidateLoadFailurePhrasing(t *testing.T) {
	runner := testsupport.NewStubRunner().Respond("xmllint", testsupport.StubResponse{
		Result: services.CommandResult{
			ExitCode: 2,
			Stderr:   "warning: failed to load external entity \"doc.xml\"\n",
		},
	})

	report, err := newClient(t, runner).Validate(context.Background(), "schema.xsd", "doc.xml")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if report.Valid {
		t.Fatal("unloadable document classified as valid")
	}
	if !report.LoadFailed {
		t.Fatal(`load failure not detected from "failed to load" stderr phrasing`)
	}
}

func TestValidateRunnerErrorWrapsExternalTool(t *testing.T) {
	runner := testsupport.NewStubRunner().Respond("xmllint", testsupport.StubResponse{
		Err: context.DeadlineExceeded,
	})

	_, err := newClient(t, runner).Validate(context.Background(), "schema.xsd", "doc.xml")
	if err == nil {
		t.Fatal("expected error when the command cannot run")
	}
}
