// Package source supplies the text a run works from: the video's title,
// description, duration, and its comment pool.
//
// Provider is implemented by the YouTube Data API client in the youtube
// subpackage and by Local, which reads a downloaded file plus optional text
// files from disk.
package source
