// Package pipeline drives a batch of AIP folders through the packaging
// workflow: naming, content filtering, restructuring, metadata extraction,
// preservation metadata, and packaging, followed by end-of-batch manifest
// finalization.
//
// Execution is single-threaded and strictly sequential: one AIP reaches a
// terminal state before the next begins. Every stage mutates shared
// filesystem state (renames, moves, cache folders), so the per-batch-root
// file lock is the only thing standing between two concurrent runs and an
// interleaved status log; do not add parallelism without replacing that
// model.
//
// Stage outcomes are explicit: a stage returns nil, a *services.Divert that
// relocates the AIP to errors/<kind>, or an unexpected error. The driver
// never probes the filesystem to infer whether a stage succeeded.
package pipeline
