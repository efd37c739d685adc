package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"chaptercut/internal/logging"
	"chaptercut/internal/media/ffprobe"
	"chaptercut/internal/postprocess"
	"chaptercut/internal/selection"
	"chaptercut/internal/services"
	"chaptercut/internal/source"
	"chaptercut/internal/textutil"
	"chaptercut/internal/timestamps"
)

var probeMedia = ffprobe.Inspect

// Report collects everything a run decided and produced.
type Report struct {
	Video     source.Video
	Candidate timestamps.Candidate
	Segments  []timestamps.Segment
	OutputDir string
	Sidecar   string
	Album     map[string]string
	Results   []postprocess.Result
}

// Completed counts segments that reached the done state.
func (r Report) Completed() int {
	return postprocess.Completed(r.Results)
}

// Err reports run-level failure after postprocessing: a run fails only when
// no segment completed.
func (r Report) Err() error {
	if len(r.Results) > 0 && r.Completed() == 0 {
		return services.Wrap(services.ErrExternalTool, "postprocess", "run", fmt.Sprintf("none of %d segments completed", len(r.Results)), nil)
	}
	return nil
}

// Plan fetches the video, selects a candidate block, and builds segments
// without touching the filesystem. mediaPath is used only when the provider
// cannot report a duration.
func (m *Manager) Plan(ctx context.Context, mediaPath string) (Report, error) {
	var report Report

	ctx = services.WithStage(ctx, "fetch")
	video, err := m.provider.Video(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch video: %w", err)
	}
	if video.Duration <= 0 && mediaPath != "" {
		duration, err := m.probeDuration(ctx, mediaPath)
		if err != nil {
			return report, err
		}
		video.Duration = duration
	}
	report.Video = video
	ctx = services.WithVideoID(ctx, video.ID)
	logging.WithContext(ctx, m.logger).Info("video loaded",
		logging.String("title", video.Title),
		logging.String("channel", video.Channel),
		logging.Duration("duration", video.Duration),
	)

	ctx = services.WithStage(ctx, "select")
	selector := selection.New(m.validator(), m.strategy, video.Duration, m.logger)
	comments := selection.CommentSourceFunc(func(ctx context.Context) ([]string, error) {
		return m.provider.Comments(ctx, m.cfg.YouTube.MaxComments)
	})
	candidate, err := selector.Select(ctx, video.Description, comments)
	if err != nil {
		return report, err
	}
	report.Candidate = candidate

	ctx = services.WithStage(ctx, "segment")
	segments, err := timestamps.BuildSegments(candidate.Markers, candidate.Style, video.Duration)
	if err != nil {
		return report, err
	}
	report.Segments = segments
	logger := logging.WithContext(ctx, m.logger)
	for _, seg := range segments {
		logger.Debug("segment built", logging.Segment(seg.Index), logging.String("segment", seg.String()))
	}
	logger.Info("segments built", logging.Int("count", len(segments)), logging.String("style", string(candidate.Style)))

	report.OutputDir = filepath.Join(m.cfg.Paths.OutputDir, folderName(video))
	album, err := m.cfg.AlbumTags(defaultAlbumTags(video))
	if err != nil {
		return report, err
	}
	report.Album = album
	return report, nil
}

// Run plans the video, records the sidecar, and postprocesses every segment
// cut from mediaPath. A non-nil error means no segment could be attempted;
// per-segment outcomes are in Report.Results.
func (m *Manager) Run(ctx context.Context, mediaPath string) (Report, error) {
	started := time.Now()
	report, err := m.Plan(ctx, mediaPath)
	if err != nil {
		return report, err
	}
	ctx = services.WithVideoID(ctx, report.Video.ID)

	ctx = services.WithStage(ctx, "postprocess")
	pipeline, err := postprocess.New(postprocess.Options{
		Source:      mediaPath,
		OutputDir:   report.OutputDir,
		Fade:        m.cfg.Postprocess.Fade,
		FadeFor:     m.cfg.FadeDuration(),
		Album:       report.Album,
		Workers:     m.cfg.Postprocess.Workers,
		VerifyTags:  m.cfg.Postprocess.VerifyTags,
		Runner:      m.runner,
		ProgressOut: m.progressOut,
		Logger:      m.logger,
		OnLocked: func(ctx context.Context, dir string) {
			if m.cfg.Timestamps.SaveSidecar {
				report.Sidecar = m.writeSidecar(ctx, dir, report)
			}
		},
	})
	if err != nil {
		return report, err
	}
	results, err := pipeline.Run(ctx, report.Segments)
	if err != nil {
		return report, err
	}
	report.Results = results

	logging.WithContext(ctx, m.logger).Info("run finished",
		logging.Int("completed", report.Completed()),
		logging.Int("segments", len(results)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// writeSidecar records the winning block next to the outputs. It runs under
// the output folder lock; a failure only warns.
func (m *Manager) writeSidecar(ctx context.Context, dir string, report Report) string {
	path, err := selection.WriteSidecar(dir, report.Video.Title, report.Candidate)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, m.logger), "sidecar not written", "sidecar_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "winning timestamps are not recorded on disk"),
		)
		return ""
	}
	return path
}

func (m *Manager) validator() timestamps.Validator {
	v := timestamps.DefaultValidator()
	if m.cfg.Timestamps.MinMarkers > 0 {
		v.MinMarkers = m.cfg.Timestamps.MinMarkers
	}
	v.Threshold = m.cfg.Timestamps.Threshold
	return v
}

func (m *Manager) probeDuration(ctx context.Context, mediaPath string) (time.Duration, error) {
	result, err := probeMedia(ctx, m.cfg.FFprobeBinary(), mediaPath)
	if err != nil {
		return 0, err
	}
	return result.Duration()
}

func folderName(video source.Video) string {
	if name := textutil.SanitizeFileName(video.Title); name != "" {
		return name
	}
	if name := textutil.SanitizeFileName(video.ID); name != "" {
		return name
	}
	return "video"
}

func defaultAlbumTags(video source.Video) map[string]string {
	tags := map[string]string{"album": video.Title}
	if video.Channel != "" {
		tags["album_artist"] = video.Channel
	}
	if year := video.Year(); year != "" {
		tags["date"] = year
	}
	return tags
}
