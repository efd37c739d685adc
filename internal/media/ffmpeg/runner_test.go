package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chaptercut/internal/services"
)

func writeStub(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestExecRunnerSuccess(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.mp3")
	// The stub creates its last argument, like ffmpeg creating the output.
	stub := writeStub(t, "for last; do :; done\ntouch \"$last\"\n")
	runner := NewExecRunner(stub, nil)
	if err := runner.Run(context.Background(), Slice("in.mp3", out, 0, 1)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output: %v", err)
	}
}

func TestExecRunnerFailure(t *testing.T) {
	stub := writeStub(t, "echo 'Invalid data found' >&2\nexit 1\n")
	runner := NewExecRunner(stub, nil)
	err := runner.Run(context.Background(), Tag("in.mp3", "out.mp3", "t", 1, nil))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") || !strings.Contains(err.Error(), "tag") {
		t.Fatalf("expected stderr and stage in error, got %v", err)
	}
}

func TestRunnerFunc(t *testing.T) {
	var seen Command
	r := RunnerFunc(func(_ context.Context, cmd Command) error {
		seen = cmd
		return nil
	})
	if err := r.Run(context.Background(), Slice("a", "b", 0, 1)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if seen.Output != "b" {
		t.Fatalf("unexpected command %+v", seen)
	}
}
