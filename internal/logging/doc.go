// Package logging assembles structured slog loggers and formatting helpers used
// across chaptercut.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with segment numbers, stages, and video ids automatically. Every
// logger built from configuration carries the run's session id. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
