package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"chaptercut/internal/services"
	"chaptercut/internal/timestamps"
)

// startListing renders n Start markers evenly spaced over span.
func startListing(n int, span time.Duration, prefix string) string {
	var b strings.Builder
	step := span / time.Duration(n-1)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s %s %d\n", timestamps.FormatClock(step*time.Duration(i)), prefix, i+1)
	}
	return b.String()
}

func staticComments(bodies ...string) CommentSource {
	return CommentSourceFunc(func(context.Context) ([]string, error) { return bodies, nil })
}

func TestSelectPrefersValidDescription(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	called := false
	comments := CommentSourceFunc(func(context.Context) ([]string, error) {
		called = true
		return nil, nil
	})
	got, err := sel.Select(context.Background(), startListing(6, 50*time.Minute, "Track"), comments)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Block.Origin != timestamps.OriginDescription || !got.Scored {
		t.Fatalf("expected scored description, got %+v", got)
	}
	if called {
		t.Fatal("comments should not be fetched when the description validates")
	}
}

func TestSelectFallsBackToBestComment(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	comments := staticComments(
		"love this",
		startListing(6, 35*time.Minute, "Low"),
		startListing(6, 55*time.Minute, "High"),
		startListing(6, 55*time.Minute, "Tie"),
		startListing(4, 55*time.Minute, "Short"),
	)
	got, err := sel.Select(context.Background(), "no chapters here", comments)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Block.Index != 3 {
		t.Fatalf("expected comment #3 (first of tied best), got %s", got.Block.Label())
	}
	if !strings.Contains(got.Block.Text, "High") {
		t.Fatalf("unexpected block text %q", got.Block.Text)
	}
}

func TestSelectDescriptionBelowThresholdFallsThrough(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	got, err := sel.Select(context.Background(), startListing(6, 10*time.Minute, "Short"),
		staticComments(startListing(5, 40*time.Minute, "Comment")))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Block.Origin != timestamps.OriginComment {
		t.Fatalf("expected comment, got %s", got.Block.Label())
	}
}

func TestSelectNoCandidates(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	_, err := sel.Select(context.Background(), "nothing", staticComments("a", "b"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = sel.Select(context.Background(), "nothing", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error without comments, got %v", err)
	}
}

func TestSelectSingleMalformedSourceSurfacesFormatError(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	mixed := "0:00 a\n1:00 - 2:00 b\n3:00 c\n4:00 d\n5:00 e"
	_, err := sel.Select(context.Background(), mixed, staticComments("thanks"))
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestSelectMalformedCommentDoesNotAbort(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	mixed := "0:00 a\n1:00 - 2:00 b\n3:00 c"
	got, err := sel.Select(context.Background(), "", staticComments(mixed, startListing(6, 45*time.Minute, "Ok")))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Block.Index != 2 {
		t.Fatalf("expected comment #2, got %s", got.Block.Label())
	}
}

func TestSelectCommentFetchError(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	boom := errors.New("quota exceeded")
	_, err := sel.Select(context.Background(), "", CommentSourceFunc(func(context.Context) ([]string, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

type fixedStrategy struct {
	idx   int
	calls int
}

func (f *fixedStrategy) Choose(context.Context, []timestamps.Candidate) (int, error) {
	f.calls++
	return f.idx, nil
}

func TestSelectDelegatesToStrategy(t *testing.T) {
	strategy := &fixedStrategy{idx: 0}
	sel := New(timestamps.DefaultValidator(), strategy, time.Hour, nil)

	got, err := sel.Select(context.Background(), "", staticComments("great mix", startListing(6, 45*time.Minute, "Only")))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if strategy.calls != 1 || got.Block.Index != 2 {
		t.Fatalf("expected lone candidate offered to the strategy, got %s (calls %d)", got.Block.Label(), strategy.calls)
	}

	got, err = sel.Select(context.Background(), "", staticComments(
		startListing(6, 35*time.Minute, "First"),
		startListing(6, 55*time.Minute, "Second"),
	))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if strategy.calls != 2 || got.Block.Index != 1 {
		t.Fatalf("expected strategy pick of comment #1, got %s (calls %d)", got.Block.Label(), strategy.calls)
	}

	strategy.idx = 9
	if _, err := sel.Select(context.Background(), "", staticComments(
		startListing(6, 35*time.Minute, "First"),
		startListing(6, 55*time.Minute, "Second"),
	)); !errors.Is(err, services.ErrSelection) {
		t.Fatalf("expected selection error for out-of-range strategy, got %v", err)
	}
}

func TestSelectPromptListsLoneCandidate(t *testing.T) {
	var out strings.Builder
	prompt := PromptStrategy{In: strings.NewReader("1\n"), Out: &out}
	sel := New(timestamps.DefaultValidator(), prompt, time.Hour, nil)

	got, err := sel.Select(context.Background(), "", staticComments(startListing(6, 45*time.Minute, "Only")))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Block.Index != 1 {
		t.Fatalf("expected comment #1, got %s", got.Block.Label())
	}
	if !strings.Contains(out.String(), "Select timestamps [1-1]") {
		t.Fatalf("expected a prompt for the single candidate, got %q", out.String())
	}
}

func TestSelectSkipsOutOfOrderComment(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	backwards := "0:00 A\n5:00 B\n3:00 C\n10:00 D\n55:00 E"
	ordered := "0:00 A\n10:00 B\n20:00 C\n30:00 D\n40:00 E"

	got, err := sel.Select(context.Background(), "", staticComments(backwards, ordered))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Block.Index != 2 {
		t.Fatalf("expected the ordered comment #2, got %s (score %.3f)", got.Block.Label(), got.Score)
	}
	if _, err := timestamps.BuildSegments(got.Markers, got.Style, time.Hour); err != nil {
		t.Fatalf("selected candidate does not build: %v", err)
	}
}

func TestSelectPrefersValidationErrorWhenOtherBlocksParsed(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, time.Hour, nil)
	mixed := "0:00 a\n1:00 - 2:00 b\n3:00 c\n4:00 d\n5:00 e"
	_, err := sel.Select(context.Background(), "", staticComments(
		mixed,
		startListing(6, 10*time.Minute, "Short"),
		startListing(6, 20*time.Minute, "Shorter"),
	))
	if !errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected no-usable-timestamps validation error, got %v", err)
	}
}

func TestSelectRejectsNonPositiveDuration(t *testing.T) {
	sel := New(timestamps.DefaultValidator(), nil, 0, nil)
	_, err := sel.Select(context.Background(), startListing(6, 50*time.Minute, "x"), nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
