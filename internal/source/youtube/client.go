package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"chaptercut/internal/logging"
	"chaptercut/internal/services"
	"chaptercut/internal/source"
)

// PageSize is the largest page commentThreads.list serves.
const PageSize = 100

// Options configures a Client.
type Options struct {
	APIKey   string
	Endpoint string
	// HTTPClient overrides the transport; nil uses the library default.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client reads one video through the Data API.
type Client struct {
	service *yt.Service
	videoID string
	logger  *slog.Logger
}

var _ source.Provider = (*Client)(nil)

// New resolves videoRef (URL or bare id) and prepares an API service.
func New(ctx context.Context, videoRef string, opts Options) (*Client, error) {
	id, err := ParseVideoID(videoRef)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "client", "youtube.api_key is required", nil)
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(key)}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	service, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{
		service: service,
		videoID: id,
		logger:  logging.NewComponentLogger(opts.Logger, "youtube"),
	}, nil
}

// VideoID returns the resolved id.
func (c *Client) VideoID() string { return c.videoID }

// Video fetches the snippet and content details.
func (c *Client) Video(ctx context.Context) (source.Video, error) {
	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails"}).
		Id(c.videoID).
		Context(ctx).
		Do()
	if err != nil {
		return source.Video{}, services.Wrap(services.ErrExternalTool, "youtube", "videos.list", c.videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return source.Video{}, services.Wrap(services.ErrNotFound, "youtube", "videos.list", fmt.Sprintf("no video information for %s", c.videoID), nil)
	}
	item := resp.Items[0]

	video := source.Video{
		ID:          c.videoID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Channel:     item.Snippet.ChannelTitle,
	}
	if item.Snippet.PublishedAt != "" {
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.Published = published
		}
	}
	if item.ContentDetails != nil {
		duration, err := ParseDuration(item.ContentDetails.Duration)
		if err != nil {
			return source.Video{}, err
		}
		video.Duration = duration
	}
	c.logger.Debug("video metadata fetched",
		logging.String(logging.FieldVideoID, c.videoID),
		logging.String("title", video.Title),
		logging.Duration("duration", video.Duration),
	)
	return video, nil
}

// Comments pages through top-level comments by relevance until max bodies
// were read or the pool is exhausted. max must be a positive multiple of
// PageSize. A video with comments disabled yields no comments.
func (c *Client) Comments(ctx context.Context, max int) ([]string, error) {
	if max <= 0 || max%PageSize != 0 {
		return nil, services.Wrap(services.ErrValidation, "youtube", "comments", fmt.Sprintf("max comments %d must be a positive multiple of %d", max, PageSize), nil)
	}

	var bodies []string
	pageToken := ""
	for pages := 0; pages < max/PageSize; pages++ {
		call := c.service.CommentThreads.List([]string{"snippet"}).
			VideoId(c.videoID).
			MaxResults(PageSize).
			Order("relevance").
			TextFormat("plainText").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			if commentsDisabled(err) {
				logging.WarnWithContext(logging.WithContext(ctx, c.logger), "comments disabled for video", "comments_disabled",
					logging.String(logging.FieldVideoID, c.videoID),
					logging.String(logging.FieldErrorHint, "only the description can supply timestamps"),
					logging.String(logging.FieldImpact, "comment candidates skipped"),
				)
				return bodies, nil
			}
			return nil, services.Wrap(services.ErrExternalTool, "youtube", "commentThreads.list", c.videoID, err)
		}
		for _, thread := range resp.Items {
			if thread.Snippet == nil || thread.Snippet.TopLevelComment == nil || thread.Snippet.TopLevelComment.Snippet == nil {
				continue
			}
			bodies = append(bodies, thread.Snippet.TopLevelComment.Snippet.TextOriginal)
		}
		if resp.NextPageToken == "" || len(resp.Items) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}
	c.logger.Debug("comments fetched",
		logging.String(logging.FieldVideoID, c.videoID),
		logging.Int("count", len(bodies)),
	)
	return bodies, nil
}

func commentsDisabled(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range apiErr.Errors {
		if item.Reason == "commentsDisabled" {
			return true
		}
	}
	return false
}
