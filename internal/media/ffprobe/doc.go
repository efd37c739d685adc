// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, tags)
//
// Inspect executes ffprobe and returns the parsed Result; Duration converts
// the container duration into the whole-second value the timestamp engine
// validates against.
package ffprobe
