package youtube

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"chaptercut/internal/services"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration converts the API's ISO 8601 content duration (P#DT#H#M#S).
func ParseDuration(raw string) (time.Duration, error) {
	m := isoDurationPattern.FindStringSubmatch(raw)
	if m == nil || raw == "P" || raw == "PT" {
		return 0, services.Wrap(services.ErrFormat, "youtube", "duration", fmt.Sprintf("invalid ISO 8601 duration %q", raw), nil)
	}
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, services.Wrap(services.ErrFormat, "youtube", "duration", raw, err)
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}
