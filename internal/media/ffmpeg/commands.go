package ffmpeg

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"chaptercut/internal/services"
)

// baseArgs precede every invocation. -n refuses to overwrite an existing
// output so a collision that slips past the precondition check still fails.
var baseArgs = []string{"-hide_banner", "-loglevel", "error", "-nostdin", "-n"}

// Fade modes.
const (
	FadeNone = "none"
	FadeIn   = "in"
	FadeOut  = "out"
	FadeBoth = "both"
)

// Command is one ffmpeg invocation.
type Command struct {
	Stage  string
	Input  string
	Output string
	Args   []string
}

func (c Command) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Stage, c.Input, c.Output)
}

func build(stage, input, output string, kwargs ffmpeggo.KwArgs) Command {
	args := ffmpeggo.Input(input).Output(output, kwargs).GetArgs()
	return Command{
		Stage:  stage,
		Input:  input,
		Output: output,
		Args:   append(slices.Clone(baseArgs), args...),
	}
}

// Slice copies [start, end] of input into output without re-encoding and
// carries the source's global metadata along.
func Slice(input, output string, start, end time.Duration) Command {
	return build("slice", input, output, ffmpeggo.KwArgs{
		"map_metadata": "0",
		"ss":           seconds(start),
		"to":           seconds(end),
		"c":            "copy",
	})
}

// Fade re-encodes input with fade filters. Fade-out is positioned from the
// segment's own length. A fade longer than the segment is rejected.
func Fade(input, output string, kind Kind, mode string, fade, length time.Duration) (Command, error) {
	if fade <= 0 {
		return Command{}, services.Wrap(services.ErrValidation, "fade", "build", fmt.Sprintf("fade duration %s is not positive", fade), nil)
	}
	if fade > length {
		return Command{}, services.Wrap(services.ErrPrecondition, "fade", "build",
			fmt.Sprintf("fade %s longer than track length %s", fade, length), nil)
	}

	var filters []string
	switch mode {
	case FadeIn:
		filters = []string{fadeFilter("in", 0, fade)}
	case FadeOut:
		filters = []string{fadeFilter("out", length-fade, fade)}
	case FadeBoth:
		filters = []string{fadeFilter("in", 0, fade), fadeFilter("out", length-fade, fade)}
	default:
		return Command{}, services.Wrap(services.ErrValidation, "fade", "build", fmt.Sprintf("unsupported fade mode %q", mode), nil)
	}

	kwargs := ffmpeggo.KwArgs{
		"map_metadata": "0",
		"af":           joinFilters("afade", filters),
	}
	if kind == KindVideo {
		kwargs["vf"] = joinFilters("fade", filters)
	}
	return build("fade", input, output, kwargs), nil
}

// Tag copies input to output with album tags plus the track title and number.
func Tag(input, output, title string, track int, album map[string]string) Command {
	keys := make([]string, 0, len(album))
	for k := range album {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	metadata := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		metadata = append(metadata, k+"="+album[k])
	}
	metadata = append(metadata, "title="+title, "track="+strconv.Itoa(track))

	kwargs := ffmpeggo.KwArgs{
		"map_metadata": "0",
		"c":            "copy",
		"metadata":     metadata,
	}
	if UsesMP4Tags(output) {
		kwargs["movflags"] = "use_metadata_tags"
	}
	return build("tag", input, output, kwargs)
}

func fadeFilter(direction string, start, length time.Duration) string {
	return fmt.Sprintf("t=%s:st=%s:d=%s", direction, seconds(start), seconds(length))
}

func joinFilters(name string, params []string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, name+"="+p)
	}
	return strings.Join(parts, ",")
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
