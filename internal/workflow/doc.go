// Package workflow runs one video end to end.
//
// The Manager asks a source.Provider for the video, lets the selection
// package pick the winning timestamp block (description first, then
// comments), builds segments, writes the audit sidecar, resolves album tags
// from configuration, and hands the segments to the postprocess pipeline.
// Plan performs the read-only half of that chain for dry runs.
//
// Run-level failures (no usable timestamps, missing source media, a locked
// output folder) are returned as errors. Per-segment failures live in
// Report.Results, and Report.Err turns "nothing completed" into an error.
package workflow
