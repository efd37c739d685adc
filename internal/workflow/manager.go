package workflow

import (
	"io"
	"log/slog"
	"os"

	"chaptercut/internal/config"
	"chaptercut/internal/logging"
	"chaptercut/internal/media/ffmpeg"
	"chaptercut/internal/selection"
	"chaptercut/internal/source"
)

// Manager drives one video from text collaborator to tagged outputs.
type Manager struct {
	cfg      *config.Config
	provider source.Provider
	logger   *slog.Logger

	runner      ffmpeg.Runner
	strategy    selection.Strategy
	progressOut io.Writer
	promptIn    io.Reader
	promptOut   io.Writer
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithRunner replaces the ffmpeg process runner.
func WithRunner(runner ffmpeg.Runner) ManagerOption {
	return func(m *Manager) { m.runner = runner }
}

// WithStrategy replaces the candidate selection strategy chosen from config.
func WithStrategy(strategy selection.Strategy) ManagerOption {
	return func(m *Manager) { m.strategy = strategy }
}

// WithProgressOutput sets where the segment progress bar is drawn.
func WithProgressOutput(w io.Writer) ManagerOption {
	return func(m *Manager) { m.progressOut = w }
}

// WithPrompt sets the streams used by interactive comment selection.
func WithPrompt(in io.Reader, out io.Writer) ManagerOption {
	return func(m *Manager) {
		m.promptIn = in
		m.promptOut = out
	}
}

// NewManager constructs a workflow manager reading from provider.
func NewManager(cfg *config.Config, provider source.Provider, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		cfg:         cfg,
		provider:    provider,
		logger:      logging.NewComponentLogger(logger, "workflow"),
		progressOut: os.Stderr,
		promptIn:    os.Stdin,
		promptOut:   os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.runner == nil {
		m.runner = ffmpeg.NewExecRunner(cfg.FFmpegBinary(), logger)
	}
	if m.strategy == nil {
		m.strategy = m.strategyFromConfig(logger)
	}
	return m
}

func (m *Manager) strategyFromConfig(logger *slog.Logger) selection.Strategy {
	if m.cfg.Timestamps.ChooseComment {
		return selection.PromptStrategy{In: m.promptIn, Out: m.promptOut, Logger: logger}
	}
	return selection.AutoStrategy{}
}
