package services_test

import (
	"context"
	"testing"

	"chaptercut/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSegment(ctx, 3)
	ctx = services.WithStage(ctx, "fade")
	ctx = services.WithVideoID(ctx, "abc123")

	if idx, ok := services.SegmentFromContext(ctx); !ok || idx != 3 {
		t.Fatalf("unexpected segment: %v %v", idx, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "fade" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if id, ok := services.VideoIDFromContext(ctx); !ok || id != "abc123" {
		t.Fatalf("unexpected video id: %v %v", id, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithSegment(ctx, 0)
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.SegmentFromContext(ctx); ok {
		t.Fatal("expected no segment value")
	}
}
