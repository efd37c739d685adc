package timestamps

import (
	"fmt"
	"time"

	"chaptercut/internal/services"
)

// unit is the gap inserted at every segment start after the first so a chapter
// does not re-include the last moment of the previous one.
const unit = time.Second

// Segment is a titled span of the source media. Index is 1-based.
type Segment struct {
	Index int
	Title string
	Start time.Duration
	End   time.Duration
}

// Length returns End-Start, which may be zero or negative for guard segments.
func (s Segment) Length() time.Duration {
	return s.End - s.Start
}

// IsGuard reports whether the segment spans no media. Guard segments are kept
// in the list so numbering stays stable; the pipeline skips them.
func (s Segment) IsGuard() bool {
	return s.End <= s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("%02d %s [%s - %s]", s.Index, s.Title, FormatClock(s.Start), FormatClock(s.End))
}

// BuildSegments converts markers into an ordered segment list anchored at zero
// and ending at videoDuration. Start style treats each clock as a boundary.
// Duration style uses each marker's pair directly and appends a trailing
// segment from the last end to videoDuration, even when that segment is empty.
func BuildSegments(markers []Marker, style Style, videoDuration time.Duration) ([]Segment, error) {
	if len(markers) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "segments", "build", "no markers", nil)
	}
	if videoDuration <= 0 {
		return nil, services.Wrap(services.ErrValidation, "segments", "build", fmt.Sprintf("video duration %s is not positive", videoDuration), nil)
	}

	var segments []Segment
	switch style {
	case StyleStart:
		bounds := make([]time.Duration, 0, len(markers))
		for i, m := range markers {
			if m.Arity() != 1 {
				return nil, arityError(i, m, style)
			}
			d, err := ParseClock(m.Clocks[0])
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, d)
		}
		for i, m := range markers {
			start := time.Duration(0)
			if i > 0 {
				start = bounds[i] + unit
			}
			end := videoDuration
			if i+1 < len(bounds) {
				end = bounds[i+1]
			}
			segments = append(segments, Segment{Index: i + 1, Title: m.Title(), Start: start, End: end})
		}
	case StyleDuration:
		for i, m := range markers {
			if m.Arity() != 2 {
				return nil, arityError(i, m, style)
			}
			pair, err := ParseClocks(m.Clocks)
			if err != nil {
				return nil, err
			}
			start := pair[0]
			if i == 0 {
				start = 0
			}
			if i > 0 && start < segments[i-1].End {
				return nil, services.Wrap(services.ErrFormat, "segments", "build",
					fmt.Sprintf("marker %d starts at %s before previous end %s", i+1, FormatClock(start), FormatClock(segments[i-1].End)), nil)
			}
			segments = append(segments, Segment{Index: i + 1, Title: m.Title(), Start: start, End: pair[1]})
		}
		last := segments[len(segments)-1].End
		segments = append(segments, Segment{Index: len(segments) + 1, Start: last + unit, End: videoDuration})
	default:
		return nil, services.Wrap(services.ErrFormat, "segments", "build", fmt.Sprintf("unknown style %q", style), nil)
	}

	for i := range segments {
		if i < len(segments)-1 && segments[i].IsGuard() {
			return nil, services.Wrap(services.ErrFormat, "segments", "build",
				fmt.Sprintf("segment %d ends at %s, not after its start %s", segments[i].Index, FormatClock(segments[i].End), FormatClock(segments[i].Start)), nil)
		}
		segments[i].Title = placeholderTitle(segments[i].Title, segments[i].Index)
	}
	return segments, nil
}

func placeholderTitle(title string, index int) string {
	if title == "" || title == "?" {
		return fmt.Sprintf("track_%d", index)
	}
	return title
}

func arityError(i int, m Marker, style Style) error {
	return services.Wrap(services.ErrFormat, "segments", "build",
		fmt.Sprintf("marker %d has %d clocks, style %s expects %d", i+1, m.Arity(), style, style.Arity()), nil)
}
