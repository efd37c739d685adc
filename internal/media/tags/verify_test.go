package tags

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCompare(t *testing.T) {
	want := Expected{Title: "Concerning Hobbits", Track: 2, Album: "Fellowship"}
	if problems := Compare(want, Observed{Title: "Concerning Hobbits", Track: 2, Album: "Fellowship"}); len(problems) != 0 {
		t.Fatalf("unexpected problems %v", problems)
	}
	problems := Compare(want, Observed{Title: "Other", Track: 3})
	if len(problems) != 3 {
		t.Fatalf("expected 3 problems, got %v", problems)
	}
	if problems := Compare(Expected{Track: 1}, Observed{Track: 1, Title: "anything"}); len(problems) != 0 {
		t.Fatalf("empty expectations should be ignored, got %v", problems)
	}
}

func TestVerifyMissingFile(t *testing.T) {
	_, err := Verify(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"), Expected{Title: "x"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
