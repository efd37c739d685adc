package timestamps

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	clockPattern     = `\d{1,2}:?\d*:\d{2}`
	separatorPattern = `(?:—|–|-|\s|\[|\])`
)

var (
	clockRe    = regexp.MustCompile(clockPattern)
	startRe    = regexp.MustCompile(`^(.*?)` + separatorPattern + `*(` + clockPattern + `)` + separatorPattern + `*(.*)$`)
	durationRe = regexp.MustCompile(`^(.*?)` + separatorPattern + `*(` + clockPattern + `)` + separatorPattern + `*(` + clockPattern + `)` + separatorPattern + `*(.*)$`)
)

// Style describes how a block's markers encode chapter boundaries.
type Style string

const (
	// StyleStart markers carry one clock: the chapter begins there.
	StyleStart Style = "start"
	// StyleDuration markers carry two clocks: explicit start and end.
	StyleDuration Style = "duration"
)

// Arity returns the number of clocks a marker of this style carries.
func (s Style) Arity() int {
	switch s {
	case StyleStart:
		return 1
	case StyleDuration:
		return 2
	default:
		return 0
	}
}

// Marker is one matched timestamp occurrence with its adjacent title text.
type Marker struct {
	Leading  string
	Trailing string
	Clocks   []string
}

// Title applies the right-hand preference rule: trailing text wins whenever it
// is present.
func (m Marker) Title() string {
	if m.Trailing != "" {
		return m.Trailing
	}
	return m.Leading
}

// Arity reports how many clock values the marker carries.
func (m Marker) Arity() int {
	return len(m.Clocks)
}

// MatchKind tags the outcome of matching a single line.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchStart
	MatchDuration
)

func (k MatchKind) String() string {
	switch k {
	case MatchStart:
		return "start"
	case MatchDuration:
		return "duration"
	default:
		return "none"
	}
}

// Match is the result of MatchLine. Marker is only meaningful when Kind is not
// MatchNone.
type Match struct {
	Kind   MatchKind
	Marker Marker
}

// MatchLine recognizes at most one marker on a line. Lines with one clock are
// matched as Start markers, lines with two as Duration markers; anything else
// yields MatchNone.
func MatchLine(line string) Match {
	line = strings.TrimRight(line, "\r")
	switch len(clockRe.FindAllString(line, -1)) {
	case 1:
		groups := startRe.FindStringSubmatch(line)
		if groups == nil {
			return Match{}
		}
		return Match{Kind: MatchStart, Marker: Marker{
			Leading:  cleanTitle(groups[1]),
			Clocks:   []string{groups[2]},
			Trailing: cleanTitle(groups[3]),
		}}
	case 2:
		groups := durationRe.FindStringSubmatch(line)
		if groups == nil {
			return Match{}
		}
		return Match{Kind: MatchDuration, Marker: Marker{
			Leading:  cleanTitle(groups[1]),
			Clocks:   []string{groups[2], groups[3]},
			Trailing: cleanTitle(groups[4]),
		}}
	default:
		return Match{}
	}
}

func cleanTitle(value string) string {
	return strings.TrimFunc(value, func(r rune) bool {
		switch r {
		case '-', '—', '–', '~', '[', ']':
			return true
		}
		return unicode.IsSpace(r)
	})
}
