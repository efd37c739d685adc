package timestamps

import (
	"fmt"
	"strings"

	"chaptercut/internal/services"
)

// Origin identifies where a block of text came from.
type Origin string

const (
	OriginDescription Origin = "description"
	OriginComment     Origin = "comment"
)

// Block is one text source split into lines. Text keeps the raw input for
// auditing; Lines have double quotes removed.
type Block struct {
	Origin Origin
	Index  int
	Text   string
	Lines  []string
}

// NewBlock prepares text for matching. Index is the relevance rank for
// comments and zero for the description.
func NewBlock(origin Origin, index int, text string) Block {
	cleaned := strings.ReplaceAll(text, `"`, "")
	return Block{
		Origin: origin,
		Index:  index,
		Text:   text,
		Lines:  strings.Split(cleaned, "\n"),
	}
}

// Label renders a short identifier for logs and prompts.
func (b Block) Label() string {
	if b.Origin == OriginComment {
		return fmt.Sprintf("comment #%d", b.Index)
	}
	return string(b.Origin)
}

// Markers returns every marker found in the block, in line order.
func (b Block) Markers() []Marker {
	var markers []Marker
	for _, line := range b.Lines {
		if m := MatchLine(line); m.Kind != MatchNone {
			markers = append(markers, m.Marker)
		}
	}
	return markers
}

// Classify derives the style from marker arity. Mixed arity is a format error.
func Classify(markers []Marker) (Style, error) {
	if len(markers) == 0 {
		return "", services.Wrap(services.ErrNotFound, "timestamps", "classify", "no markers", nil)
	}
	first := markers[0].Arity()
	for i, m := range markers[1:] {
		if m.Arity() != first {
			return "", services.Wrap(services.ErrFormat, "timestamps", "classify",
				fmt.Sprintf("mixed marker arity: marker 1 has %d clocks, marker %d has %d", first, i+2, m.Arity()), nil)
		}
	}
	switch first {
	case 1:
		return StyleStart, nil
	case 2:
		return StyleDuration, nil
	default:
		return "", services.Wrap(services.ErrFormat, "timestamps", "classify", fmt.Sprintf("unsupported marker arity %d", first), nil)
	}
}

// ParseBlock matches every line of the block and classifies the result. A
// block with no markers returns an error wrapping services.ErrNotFound.
func ParseBlock(b Block) ([]Marker, Style, error) {
	markers := b.Markers()
	style, err := Classify(markers)
	if err != nil {
		return markers, "", err
	}
	return markers, style, nil
}
