package ffmpeg

import (
	"path/filepath"
	"strings"
)

// Kind distinguishes audio-only outputs from outputs carrying video.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".m4a": {}, ".aac": {}, ".flac": {}, ".wav": {}, ".ogg": {}, ".opus": {},
}

var mp4Family = map[string]struct{}{
	".mp4": {}, ".m4a": {}, ".m4v": {}, ".mov": {},
}

// KindFor derives the media kind from a file extension. Unknown extensions
// are treated as video.
func KindFor(path string) Kind {
	if _, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return KindAudio
	}
	return KindVideo
}

// UsesMP4Tags reports whether tags need -movflags use_metadata_tags to land
// in the output container.
func UsesMP4Tags(path string) bool {
	_, ok := mp4Family[strings.ToLower(filepath.Ext(path))]
	return ok
}
