// Package ffmpeg builds and runs the slice, fade, and tag invocations the
// postprocessing pipeline issues against the ffmpeg binary.
//
// Argument lists are assembled with u2takey/ffmpeg-go so every stage shares
// the same flag rendering, then executed through a Runner. ExecRunner shells
// out; tests substitute a fake that records commands and fabricates outputs.
package ffmpeg
