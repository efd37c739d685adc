package timestamps

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"chaptercut/internal/services"
)

// clockWidth is the length of the canonical HH:MM:SS form.
const clockWidth = 8

// ParseClock converts a loose [[H:]M:]S clock string into a duration from zero.
// The input is left-padded to HH:MM:SS: a colon is prepended when it would land
// on a field boundary, a zero otherwise.
func ParseClock(raw string) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, services.Wrap(services.ErrFormat, "timestamps", "parse clock", "empty clock value", nil)
	}
	for _, r := range value {
		if (r < '0' || r > '9') && r != ':' {
			return 0, services.Wrap(services.ErrFormat, "timestamps", "parse clock", fmt.Sprintf("invalid character %q in %q", r, raw), nil)
		}
	}
	padded := padClock(value)
	if len(padded) != clockWidth {
		return 0, services.Wrap(services.ErrFormat, "timestamps", "parse clock", fmt.Sprintf("%q is longer than HH:MM:SS", raw), nil)
	}
	fields := strings.Split(padded, ":")
	if len(fields) != 3 {
		return 0, services.Wrap(services.ErrFormat, "timestamps", "parse clock", fmt.Sprintf("%q does not pad to HH:MM:SS", raw), nil)
	}
	limits := [3]int{23, 59, 59}
	var parts [3]int
	for i, field := range fields {
		if len(field) != 2 {
			return 0, services.Wrap(services.ErrFormat, "timestamps", "parse clock", fmt.Sprintf("%q does not pad to HH:MM:SS", raw), nil)
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, services.Wrap(services.ErrFormat, "timestamps", "parse clock", fmt.Sprintf("field %q in %q", field, raw), err)
		}
		if n > limits[i] {
			return 0, services.Wrap(services.ErrFormat, "timestamps", "parse clock", fmt.Sprintf("field %q out of range in %q", field, raw), nil)
		}
		parts[i] = n
	}
	return time.Duration(parts[0])*time.Hour +
		time.Duration(parts[1])*time.Minute +
		time.Duration(parts[2])*time.Second, nil
}

// ParseClocks parses every element and fails on the first malformed one.
func ParseClocks(raw []string) ([]time.Duration, error) {
	out := make([]time.Duration, 0, len(raw))
	for _, value := range raw {
		d, err := ParseClock(value)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FormatClock renders d as HH:MM:SS, truncating sub-second precision.
func FormatClock(d time.Duration) string {
	negative := d < 0
	if negative {
		d = -d
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	out := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if negative {
		return "-" + out
	}
	return out
}

func padClock(value string) string {
	for len(value) < clockWidth {
		if (len(value)+1)%3 == 0 {
			value = ":" + value
		} else {
			value = "0" + value
		}
	}
	return value
}
