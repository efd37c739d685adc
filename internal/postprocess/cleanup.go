package postprocess

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"chaptercut/internal/logging"
	"chaptercut/internal/services"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// checkPaths enforces the stage preconditions: the input exists and the
// output does not.
func checkPaths(stage, input, output string) error {
	if !fileExists(input) {
		return services.Wrap(services.ErrPrecondition, stage, "check", "input "+input+" does not exist", nil)
	}
	if fileExists(output) {
		return services.Wrap(services.ErrPrecondition, stage, "check", "output "+output+" already exists", nil)
	}
	return nil
}

// discard removes a superseded intermediate after a successful stage.
func (p *Pipeline) discard(ctx context.Context, job *Job, path string) {
	job.forget(path)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.WarnWithContext(logging.WithContext(ctx, p.logger), "failed to remove intermediate", "cleanup_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stale intermediate left in output folder"),
		)
	}
}

// abandon removes every file the failed job produced. Removal problems are
// logged and never replace the job's error.
func (p *Pipeline) abandon(ctx context.Context, job *Job) {
	logger := logging.WithContext(ctx, p.logger)
	logging.ErrorWithContext(logger, "segment failed", "segment_failed",
		logging.String("title", job.Segment.Title),
		logging.String("error_kind", services.Kind(job.Err)),
		logging.Error(job.Err),
	)
	for _, path := range job.Produced() {
		job.forget(path)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(logger, "failed to remove intermediate", "cleanup_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "partial file left in output folder"),
			)
			continue
		}
		logger.Info("removed intermediate", logging.String("path", path))
	}
}
