package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"chaptercut/internal/services"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the 11-character video id from a watch, short-link,
// shorts, embed, or live URL. A bare id is returned unchanged.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoIDPattern.MatchString(raw) {
		return raw, nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "youtube", "video id", "unparseable url", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch {
	case host == "youtu.be":
		id = segments[0]
	case host == "youtube.com" || host == "music.youtube.com" || host == "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				id = segments[1]
			}
		}
	}
	if !videoIDPattern.MatchString(id) {
		return "", services.Wrap(services.ErrValidation, "youtube", "video id", fmt.Sprintf("no video id in %q", raw), nil)
	}
	return id, nil
}
