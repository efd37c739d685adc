package postprocess

import (
	"context"
	"fmt"
	"strings"

	"chaptercut/internal/logging"
	"chaptercut/internal/media/ffmpeg"
	"chaptercut/internal/media/tags"
	"chaptercut/internal/services"
)

var verifyTags = tags.Verify

func (p *Pipeline) runJob(ctx context.Context, job *Job) {
	ctx = services.WithSegment(ctx, job.Segment.Index)
	logger := logging.WithContext(ctx, p.logger)

	if job.Segment.IsGuard() {
		job.advance(StateSkipped)
		logger.Info("segment skipped",
			logging.String("title", job.Segment.Title),
			logging.String("reason", "segment spans no media"),
		)
		return
	}
	if fileExists(job.OutputPath) {
		job.fail(services.Wrap(services.ErrPrecondition, "slice", "check", fmt.Sprintf("output %s already exists", job.OutputPath), nil))
		p.abandon(ctx, job)
		return
	}

	if err := p.slice(ctx, job); err != nil {
		job.fail(err)
		p.abandon(ctx, job)
		return
	}
	current := job.SlicePath
	if p.opts.Fade != ffmpeg.FadeNone {
		if err := p.fade(ctx, job); err != nil {
			job.fail(err)
			p.abandon(ctx, job)
			return
		}
		current = job.FadePath
	}
	if err := p.tag(ctx, job, current); err != nil {
		job.fail(err)
		p.abandon(ctx, job)
		return
	}
	p.verify(ctx, job)
	job.advance(StateDone)
}

func (p *Pipeline) slice(ctx context.Context, job *Job) error {
	ctx = services.WithStage(ctx, "slice")
	if err := checkPaths("slice", p.opts.Source, job.SlicePath); err != nil {
		return err
	}
	cmd := ffmpeg.Slice(p.opts.Source, job.SlicePath, job.Segment.Start, job.Segment.End)
	if err := p.exec(ctx, job, cmd); err != nil {
		return err
	}
	job.advance(StateSliced)
	return nil
}

func (p *Pipeline) fade(ctx context.Context, job *Job) error {
	ctx = services.WithStage(ctx, "fade")
	if err := checkPaths("fade", job.SlicePath, job.FadePath); err != nil {
		return err
	}
	cmd, err := ffmpeg.Fade(job.SlicePath, job.FadePath, p.kind, p.opts.Fade, p.opts.FadeFor, job.Segment.Length())
	if err != nil {
		return err
	}
	if err := p.exec(ctx, job, cmd); err != nil {
		return err
	}
	p.discard(ctx, job, job.SlicePath)
	job.advance(StateFaded)
	return nil
}

func (p *Pipeline) tag(ctx context.Context, job *Job, input string) error {
	ctx = services.WithStage(ctx, "tag")
	if err := checkPaths("tag", input, job.OutputPath); err != nil {
		return err
	}
	cmd := ffmpeg.Tag(input, job.OutputPath, job.Segment.Title, job.Segment.Index, p.opts.Album)
	if err := p.exec(ctx, job, cmd); err != nil {
		return err
	}
	job.forget(job.OutputPath)
	p.discard(ctx, job, input)
	job.advance(StateTagged)
	return nil
}

// verify reads the written tags back. Problems are recorded as warnings and
// never fail the job.
func (p *Pipeline) verify(ctx context.Context, job *Job) {
	if !p.opts.VerifyTags || p.kind != ffmpeg.KindAudio {
		return
	}
	ctx = services.WithStage(ctx, "verify")
	logger := logging.WithContext(ctx, p.logger)

	want := tags.Expected{Title: job.Segment.Title, Track: job.Segment.Index, Album: p.opts.Album["album"]}
	problems, err := verifyTags(ctx, job.OutputPath, want)
	if err != nil {
		problems = []string{err.Error()}
	}
	if len(problems) == 0 {
		logger.Debug("tags verified", logging.String("output", job.OutputPath))
		return
	}
	job.Warnings = append(job.Warnings, problems...)
	logging.WarnWithContext(logger, "tag verification mismatch", "tag_verify",
		logging.String("output", job.OutputPath),
		logging.String("problems", strings.Join(problems, "; ")),
		logging.String(logging.FieldErrorHint, "inspect the output tags manually"),
		logging.String(logging.FieldImpact, "output kept as written"),
	)
}

// exec runs cmd and records its output in the job's ledger, including any
// partial file a failing invocation left behind.
func (p *Pipeline) exec(ctx context.Context, job *Job, cmd ffmpeg.Command) error {
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("stage started", logging.String("input", cmd.Input), logging.String("output", cmd.Output))

	if err := p.opts.Runner.Run(ctx, cmd); err != nil {
		if fileExists(cmd.Output) {
			job.record(cmd.Output)
		}
		return err
	}
	if !fileExists(cmd.Output) {
		return services.Wrap(services.ErrExternalTool, cmd.Stage, "ffmpeg", fmt.Sprintf("exited cleanly but %s was not written", cmd.Output), nil)
	}
	job.record(cmd.Output)
	logger.Info("stage completed", logging.String("output", cmd.Output))
	return nil
}
