package postprocess

import (
	"context"

	"chaptercut/internal/media/tags"
)

// SetVerifyForTests overrides the tag read-back during tests.
func SetVerifyForTests(fn func(context.Context, string, tags.Expected) ([]string, error)) func() {
	previous := verifyTags
	verifyTags = fn
	return func() {
		verifyTags = previous
	}
}
