// Package services defines shared utilities consumed by the timestamp engine,
// the postprocessing pipeline, and the text collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp segment numbers, stage names, video ids, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (format, validation, precondition, external tool, ...)
//     intact across package boundaries.
//
// Use these helpers when wiring new stage logic so error reporting and
// observability stay uniform across the run.
package services
