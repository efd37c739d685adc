package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chaptercut/internal/textutil"
	"chaptercut/internal/timestamps"
)

// SidecarSuffix names the audit file written next to the outputs.
const SidecarSuffix = "_timestamps.txt"

// SidecarPath returns where WriteSidecar stores the block for videoTitle.
func SidecarPath(dir, videoTitle string, now time.Time) string {
	name := textutil.SanitizeFileName(videoTitle)
	if name == "" {
		name = fmt.Sprintf("video_timestamps_%d.txt", now.Unix())
		return filepath.Join(dir, name)
	}
	return filepath.Join(dir, name+SidecarSuffix)
}

// WriteSidecar records the exact raw text of the winning block.
func WriteSidecar(dir, videoTitle string, candidate timestamps.Candidate) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create sidecar directory: %w", err)
	}
	path := SidecarPath(dir, videoTitle, time.Now())
	if err := os.WriteFile(path, []byte(candidate.Block.Text), 0o644); err != nil {
		return "", fmt.Errorf("write sidecar: %w", err)
	}
	return path, nil
}
