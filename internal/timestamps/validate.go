package timestamps

import (
	"fmt"
	"time"

	"chaptercut/internal/services"
)

const (
	DefaultMinMarkers = 5
	DefaultThreshold  = 0.5
)

// Validator rejects blocks that are too short or cover too little of the video.
type Validator struct {
	MinMarkers int
	Threshold  float64
}

// DefaultValidator returns the validator used when configuration is silent.
func DefaultValidator() Validator {
	return Validator{MinMarkers: DefaultMinMarkers, Threshold: DefaultThreshold}
}

// Validate scores markers against the video duration. ok is false when the
// block is discarded; reason explains why. score is reported for every block
// that reached the coverage step, accepted or not. err is non-nil only for
// malformed input.
//
// Markers that BuildSegments could not turn into non-empty segments are a
// format error, so a block that would fail later is discarded here instead.
//
// Start-style coverage sums the gaps between successive markers, so the final
// chapter's tail is never counted.
func (v Validator) Validate(markers []Marker, style Style, videoDuration time.Duration) (score float64, ok bool, reason string, err error) {
	if videoDuration <= 0 {
		return 0, false, "", services.Wrap(services.ErrValidation, "timestamps", "validate", fmt.Sprintf("video duration %s is not positive", videoDuration), nil)
	}
	if len(markers) < v.MinMarkers {
		return 0, false, fmt.Sprintf("too few markers (%d < %d)", len(markers), v.MinMarkers), nil
	}
	arity := style.Arity()
	if arity == 0 {
		return 0, false, "", services.Wrap(services.ErrFormat, "timestamps", "validate", fmt.Sprintf("unknown style %q", style), nil)
	}

	clocks := make([][]time.Duration, 0, len(markers))
	for i, m := range markers {
		if m.Arity() != arity {
			return 0, false, "", services.Wrap(services.ErrFormat, "timestamps", "validate",
				fmt.Sprintf("marker %d has %d clocks, style %s expects %d", i+1, m.Arity(), style, arity), nil)
		}
		values, err := ParseClocks(m.Clocks)
		if err != nil {
			return 0, false, "", err
		}
		clocks = append(clocks, values)
	}

	if err := checkOrder(clocks, style); err != nil {
		return 0, false, "", err
	}

	var covered time.Duration
	switch style {
	case StyleStart:
		for i := 0; i+1 < len(clocks); i++ {
			covered += clocks[i+1][0] - clocks[i][0]
		}
	case StyleDuration:
		for _, pair := range clocks {
			covered += pair[1] - pair[0]
		}
	}

	score = float64(covered) / float64(videoDuration)
	if score < 0 {
		return score, false, fmt.Sprintf("negative coverage %.2f", score), nil
	}
	if score < v.Threshold {
		return score, false, fmt.Sprintf("coverage %.2f below threshold %.2f", score, v.Threshold), nil
	}
	return score, true, "", nil
}

// checkOrder applies the segment bounds BuildSegments derives: every segment
// other than the trailing one must end after it starts, and Duration pairs
// must not overlap the previous pair.
func checkOrder(clocks [][]time.Duration, style Style) error {
	switch style {
	case StyleStart:
		for i := 1; i < len(clocks); i++ {
			start := time.Duration(0)
			if i > 1 {
				start = clocks[i-1][0] + unit
			}
			if clocks[i][0] <= start {
				return services.Wrap(services.ErrFormat, "timestamps", "validate",
					fmt.Sprintf("marker %d at %s is not after %s", i+1, FormatClock(clocks[i][0]), FormatClock(start)), nil)
			}
		}
	case StyleDuration:
		var prevEnd time.Duration
		for i, pair := range clocks {
			start := pair[0]
			if i == 0 {
				start = 0
			}
			if i > 0 && start < prevEnd {
				return services.Wrap(services.ErrFormat, "timestamps", "validate",
					fmt.Sprintf("marker %d starts at %s before previous end %s", i+1, FormatClock(start), FormatClock(prevEnd)), nil)
			}
			if pair[1] <= start {
				return services.Wrap(services.ErrFormat, "timestamps", "validate",
					fmt.Sprintf("marker %d ends at %s, not after its start %s", i+1, FormatClock(pair[1]), FormatClock(start)), nil)
			}
			prevEnd = pair[1]
		}
	}
	return nil
}
