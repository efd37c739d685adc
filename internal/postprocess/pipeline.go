package postprocess

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"chaptercut/internal/logging"
	"chaptercut/internal/media/ffmpeg"
	"chaptercut/internal/services"
	"chaptercut/internal/timestamps"
)

// LockFileName is the advisory lock held on the output folder during a run.
const LockFileName = ".chaptercut.lock"

// Options configures a Pipeline.
type Options struct {
	// Source is the downloaded media every segment is cut from.
	Source string
	// OutputDir is the per-video folder receiving outputs and intermediates.
	OutputDir string
	Fade      string
	FadeFor   time.Duration
	// Album holds album-level tags written to every output.
	Album      map[string]string
	Workers    int
	VerifyTags bool
	Runner     ffmpeg.Runner
	// ProgressOut receives the progress bar when it is a terminal.
	ProgressOut io.Writer
	Logger      *slog.Logger
	// OnLocked, when set, runs once the output folder lock is held and
	// before any segment starts. Files it writes share the lock's protection.
	OnLocked func(ctx context.Context, outputDir string)
}

// Pipeline runs segments through slice, fade, and tag.
type Pipeline struct {
	opts   Options
	kind   ffmpeg.Kind
	ext    string
	logger *slog.Logger
}

// New validates options and derives the media kind from the source.
func New(opts Options) (*Pipeline, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return nil, services.Wrap(services.ErrPrecondition, "postprocess", "init", "source media path is required", nil)
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, services.Wrap(services.ErrPrecondition, "postprocess", "init", "output directory is required", nil)
	}
	if opts.Runner == nil {
		return nil, services.Wrap(services.ErrPrecondition, "postprocess", "init", "ffmpeg runner is required", nil)
	}
	if opts.Fade == "" {
		opts.Fade = ffmpeg.FadeNone
	}
	switch opts.Fade {
	case ffmpeg.FadeNone:
	case ffmpeg.FadeIn, ffmpeg.FadeOut, ffmpeg.FadeBoth:
		if opts.FadeFor <= 0 {
			return nil, services.Wrap(services.ErrValidation, "postprocess", "init", fmt.Sprintf("fade %q needs a positive duration", opts.Fade), nil)
		}
	default:
		return nil, services.Wrap(services.ErrValidation, "postprocess", "init", fmt.Sprintf("unsupported fade mode %q", opts.Fade), nil)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		opts:   opts,
		kind:   ffmpeg.KindFor(opts.Source),
		ext:    strings.ToLower(filepath.Ext(opts.Source)),
		logger: logging.NewComponentLogger(opts.Logger, "postprocess"),
	}, nil
}

// Run processes every segment and returns one result per segment in index
// order. Per-segment failures are reported in the results; the returned
// error covers only run-level problems such as a missing source or a
// folder already locked by another run.
func (p *Pipeline) Run(ctx context.Context, segments []timestamps.Segment) ([]Result, error) {
	logger := logging.WithContext(ctx, p.logger)

	if _, err := os.Stat(p.opts.Source); err != nil {
		return nil, services.Wrap(services.ErrPrecondition, "postprocess", "run", "source media unavailable", err)
	}
	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lockPath := filepath.Join(p.opts.OutputDir, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrPrecondition, "postprocess", "run",
			fmt.Sprintf("another run is writing to %s", p.opts.OutputDir), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.String("lock", lockPath), logging.Error(err))
		}
		_ = os.Remove(lockPath)
	}()

	if p.opts.OnLocked != nil {
		p.opts.OnLocked(ctx, p.opts.OutputDir)
	}

	jobs := Plan(p.opts.OutputDir, p.ext, segments)
	progress := NewProgress(len(jobs), p.opts.ProgressOut, p.logger)
	logger.Info("postprocessing started",
		logging.Int("segments", len(jobs)),
		logging.Int("workers", p.opts.Workers),
		logging.String("fade", p.opts.Fade),
		logging.String("kind", string(p.kind)),
		logging.String("output_dir", p.opts.OutputDir),
	)

	var group errgroup.Group
	group.SetLimit(p.opts.Workers)
	for _, job := range jobs {
		group.Go(func() error {
			p.runJob(ctx, job)
			progress.Done(job)
			return nil
		})
	}
	_ = group.Wait()
	progress.Finish()

	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		results = append(results, job.result())
	}
	logger.Info("postprocessing finished",
		logging.Int("completed", Completed(results)),
		logging.Int("segments", len(results)),
	)
	return results, nil
}
