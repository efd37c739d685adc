package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"chaptercut/internal/config"
	"chaptercut/internal/services"
	"chaptercut/internal/source"
	"chaptercut/internal/source/youtube"
)

// sourceFlags select the text collaborator: the YouTube API when a video URL
// or id is given, local files otherwise.
type sourceFlags struct {
	media       string
	description string
	comments    string
	title       string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.media, "media", "m", "", "Downloaded media file to cut")
	cmd.Flags().StringVar(&f.description, "description", "", "Description text file (local mode)")
	cmd.Flags().StringVar(&f.comments, "comments", "", "JSON array of comment bodies (local mode)")
	cmd.Flags().StringVar(&f.title, "title", "", "Video title (local mode; defaults to the media tags or file name)")
}

func (f *sourceFlags) provider(ctx context.Context, cfg *config.Config, args []string, logger *slog.Logger) (source.Provider, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return youtube.New(ctx, args[0], youtube.Options{
			APIKey:   cfg.YouTube.APIKey,
			Endpoint: cfg.YouTube.Endpoint,
			Logger:   logger,
		})
	}
	if strings.TrimSpace(f.media) == "" {
		return nil, services.Wrap(services.ErrPrecondition, "cli", "source", "either a video URL or --media is required", nil)
	}
	return source.Local{
		MediaPath:       f.media,
		DescriptionPath: f.description,
		CommentsPath:    f.comments,
		Title:           f.title,
		FFprobe:         cfg.FFprobeBinary(),
	}, nil
}
