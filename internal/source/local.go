package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chaptercut/internal/media/ffprobe"
	"chaptercut/internal/services"
)

var probeMedia = ffprobe.Inspect

// Local reads video metadata from a downloaded media file. The description
// comes from DescriptionPath when set, otherwise from the container's
// description or comment tag. CommentsPath, when set, names a JSON array of
// comment bodies.
type Local struct {
	MediaPath       string
	DescriptionPath string
	CommentsPath    string
	Title           string
	FFprobe         string
}

// Video inspects the media file and assembles the metadata.
func (l Local) Video(ctx context.Context) (Video, error) {
	if strings.TrimSpace(l.MediaPath) == "" {
		return Video{}, services.Wrap(services.ErrPrecondition, "source", "local", "media path is required", nil)
	}
	if _, err := os.Stat(l.MediaPath); err != nil {
		return Video{}, services.Wrap(services.ErrPrecondition, "source", "local", "media file unavailable", err)
	}

	probe, err := probeMedia(ctx, l.FFprobe, l.MediaPath)
	if err != nil {
		return Video{}, err
	}
	duration, err := probe.Duration()
	if err != nil {
		return Video{}, err
	}
	tags := lowerKeys(probe.Format.Tags)

	video := Video{
		ID:       strings.TrimSuffix(filepath.Base(l.MediaPath), filepath.Ext(l.MediaPath)),
		Title:    firstNonEmpty(l.Title, tags["title"]),
		Channel:  firstNonEmpty(tags["album_artist"], tags["artist"]),
		Duration: duration,
	}
	if video.Title == "" {
		video.Title = video.ID
	}
	if raw := tags["date"]; raw != "" {
		video.Published = parseTagDate(raw)
	}

	if l.DescriptionPath != "" {
		data, err := os.ReadFile(l.DescriptionPath)
		if err != nil {
			return Video{}, fmt.Errorf("read description: %w", err)
		}
		video.Description = string(data)
	} else {
		video.Description = firstNonEmpty(tags["description"], tags["comment"], tags["synopsis"])
	}
	return video, nil
}

// Comments reads the comments file. A Local without one has no comments.
func (l Local) Comments(_ context.Context, max int) ([]string, error) {
	if l.CommentsPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(l.CommentsPath)
	if err != nil {
		return nil, fmt.Errorf("read comments: %w", err)
	}
	var bodies []string
	if err := json.Unmarshal(data, &bodies); err != nil {
		return nil, services.Wrap(services.ErrFormat, "source", "comments", "expected a JSON array of strings", err)
	}
	if max > 0 && len(bodies) > max {
		bodies = bodies[:max]
	}
	return bodies, nil
}

func parseTagDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"20060102", "2006-01-02", "2006"} {
		if len(raw) < len(layout) {
			continue
		}
		if t, err := time.Parse(layout, raw[:len(layout)]); err == nil {
			return t
		}
	}
	return time.Time{}
}

func lowerKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = strings.TrimSpace(v)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
