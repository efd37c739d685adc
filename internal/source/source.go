package source

import (
	"context"
	"time"
)

// Video carries the metadata a run needs from the text collaborator.
type Video struct {
	ID          string
	Title       string
	Description string
	Channel     string
	Published   time.Time
	Duration    time.Duration
}

// Year returns the publish year as a string, or "" when unknown.
func (v Video) Year() string {
	if v.Published.IsZero() {
		return ""
	}
	return v.Published.Format("2006")
}

// Provider fetches video metadata and comment bodies.
type Provider interface {
	Video(ctx context.Context) (Video, error)
	// Comments returns up to max top-level comment bodies in relevance order.
	Comments(ctx context.Context, max int) ([]string, error)
}
