package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chaptercut/internal/logging"
	"chaptercut/internal/services"
	"chaptercut/internal/timestamps"
)

// CommentSource supplies comment bodies in relevance order.
type CommentSource interface {
	Comments(ctx context.Context) ([]string, error)
}

// CommentSourceFunc adapts a function to CommentSource.
type CommentSourceFunc func(ctx context.Context) ([]string, error)

func (f CommentSourceFunc) Comments(ctx context.Context) ([]string, error) { return f(ctx) }

// Selector evaluates text blocks against a known video duration.
type Selector struct {
	Validator timestamps.Validator
	Strategy  Strategy
	Duration  time.Duration
	Logger    *slog.Logger
}

// New builds a selector. A nil strategy defaults to AutoStrategy.
func New(validator timestamps.Validator, strategy Strategy, duration time.Duration, logger *slog.Logger) *Selector {
	if strategy == nil {
		strategy = AutoStrategy{}
	}
	return &Selector{
		Validator: validator,
		Strategy:  strategy,
		Duration:  duration,
		Logger:    logging.NewComponentLogger(logger, "selection"),
	}
}

// Select returns the winning candidate. comments is consulted only when the
// description does not validate; it may be nil.
//
// A run with no validated block fails with services.ErrValidation, unless a
// single block carried markers, was rejected as malformed, and no other block
// parsed; then its format error is returned.
func (s *Selector) Select(ctx context.Context, description string, comments CommentSource) (timestamps.Candidate, error) {
	logger := logging.WithContext(ctx, s.Logger)
	var formatErrs []error
	parsed := 0

	desc, err := s.Evaluate(timestamps.NewBlock(timestamps.OriginDescription, 0, description))
	switch {
	case err == nil && desc.Scored:
		logger.Info("description timestamps accepted", candidateAttrs(desc)...)
		return desc, nil
	case err == nil:
		parsed++
	case errors.Is(err, services.ErrFormat):
		formatErrs = append(formatErrs, err)
	case err != nil && !errors.Is(err, services.ErrNotFound):
		return timestamps.Candidate{}, err
	}
	logger.Info("description has no usable timestamps; checking comments")

	if comments == nil {
		return timestamps.Candidate{}, noCandidates(formatErrs, parsed)
	}
	bodies, err := comments.Comments(ctx)
	if err != nil {
		return timestamps.Candidate{}, fmt.Errorf("fetch comments: %w", err)
	}

	var valid []timestamps.Candidate
	for i, body := range bodies {
		c, err := s.Evaluate(timestamps.NewBlock(timestamps.OriginComment, i+1, body))
		if err != nil {
			if errors.Is(err, services.ErrFormat) {
				formatErrs = append(formatErrs, err)
			} else if !errors.Is(err, services.ErrNotFound) {
				return timestamps.Candidate{}, err
			}
			continue
		}
		parsed++
		if c.Scored {
			valid = append(valid, c)
		}
	}
	logger.Info("comment scan complete",
		logging.Int("comments", len(bodies)),
		logging.Int("valid", len(valid)),
	)
	if len(valid) == 0 {
		return timestamps.Candidate{}, noCandidates(formatErrs, parsed)
	}

	// A prompt lists even a lone candidate.
	idx, err := s.Strategy.Choose(ctx, valid)
	if err != nil {
		return timestamps.Candidate{}, err
	}
	if idx < 0 || idx >= len(valid) {
		return timestamps.Candidate{}, services.Wrap(services.ErrSelection, "selection", "choose", fmt.Sprintf("strategy returned index %d of %d", idx, len(valid)), nil)
	}
	chosen := valid[idx]
	logger.Info("comment timestamps selected", candidateAttrs(chosen)...)
	return chosen, nil
}

// Evaluate parses and scores a single block, logging the outcome. Blocks that
// parse but fail validation return a candidate with Scored unset and a nil
// error.
func (s *Selector) Evaluate(block timestamps.Block) (timestamps.Candidate, error) {
	candidate := timestamps.Candidate{Block: block}
	markers, style, err := timestamps.ParseBlock(block)
	candidate.Markers = markers
	if err != nil {
		if errors.Is(err, services.ErrFormat) {
			s.log().Info("candidate discarded",
				logging.String("origin", block.Label()),
				logging.Int("markers", len(markers)),
				logging.String("reason", err.Error()),
			)
		}
		return candidate, err
	}
	candidate.Style = style

	score, ok, reason, err := s.Validator.Validate(markers, style, s.Duration)
	if err != nil {
		s.log().Info("candidate discarded",
			logging.String("origin", block.Label()),
			logging.String("reason", err.Error()),
		)
		return candidate, err
	}
	candidate.Score = score
	if !ok {
		s.log().Info("candidate discarded",
			logging.String("origin", block.Label()),
			logging.Int("markers", len(markers)),
			logging.Coverage(score),
			logging.String("reason", reason),
		)
		return candidate, nil
	}
	candidate.Scored = true
	s.log().Info("candidate validated", candidateAttrs(candidate)...)
	return candidate, nil
}

func (s *Selector) log() *slog.Logger {
	if s.Logger == nil {
		return logging.NewNop()
	}
	return s.Logger
}

func candidateAttrs(c timestamps.Candidate) []any {
	return logging.Args(
		logging.String("origin", c.Block.Label()),
		logging.String("style", string(c.Style)),
		logging.Int("markers", len(c.Markers)),
		logging.Coverage(c.Score),
	)
}

func noCandidates(formatErrs []error, parsed int) error {
	if len(formatErrs) == 1 && parsed == 0 {
		return formatErrs[0]
	}
	return services.Wrap(services.ErrValidation, "selection", "select", "no usable timestamps in description or comments", nil)
}
