// Package services defines shared utilities consumed by the pipeline stage
// handlers and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp AIP identifiers, stage names, and run
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper, and the Divert error
//     that carries an error-partition kind with its sidecar diagnostics.
//   - The CommandRunner abstraction that makes external tool invocation
//     testable and reports exit status as data rather than an error.
//
// Use these helpers when wiring new stage logic so operational behaviour
// stays uniform across the pipeline.
package services
