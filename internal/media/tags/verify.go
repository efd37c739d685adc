// Package tags reads back tags written by the tag stage so the pipeline can
// flag outputs whose metadata did not land.
package tags

import (
	"context"
	"fmt"
	"strings"

	"github.com/simonhull/audiometa"
)

// Expected is what the tag stage wrote.
type Expected struct {
	Title string
	Track int
	Album string
}

// Observed is what was read back from the file.
type Observed struct {
	Title string
	Track int
	Album string
}

// Read opens path with audiometa and extracts the fields the tag stage sets.
func Read(ctx context.Context, path string) (Observed, error) {
	file, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return Observed{}, fmt.Errorf("read tags %s: %w", path, err)
	}
	defer file.Close()
	return Observed{
		Title: file.Tags.Title,
		Track: file.Tags.TrackNumber,
		Album: file.Tags.Album,
	}, nil
}

// Compare lists human-readable mismatches between want and got. Empty
// expectations are not checked.
func Compare(want Expected, got Observed) []string {
	var problems []string
	if want.Title != "" && strings.TrimSpace(got.Title) != want.Title {
		problems = append(problems, fmt.Sprintf("title %q, want %q", got.Title, want.Title))
	}
	if want.Track > 0 && got.Track != want.Track {
		problems = append(problems, fmt.Sprintf("track %d, want %d", got.Track, want.Track))
	}
	if want.Album != "" && strings.TrimSpace(got.Album) != want.Album {
		problems = append(problems, fmt.Sprintf("album %q, want %q", got.Album, want.Album))
	}
	return problems
}

// Verify reads path and compares it against want. The returned slice is empty
// when every expected field matches.
func Verify(ctx context.Context, path string, want Expected) ([]string, error) {
	got, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return Compare(want, got), nil
}
