package ffmpeg

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"chaptercut/internal/logging"
	"chaptercut/internal/services"
)

// Runner executes a built command. Implementations block until the process
// exits; there is no timeout beyond ctx cancellation.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd Command) error

func (f RunnerFunc) Run(ctx context.Context, cmd Command) error { return f(ctx, cmd) }

// ExecRunner runs commands against a real ffmpeg binary.
type ExecRunner struct {
	Binary string
	Logger *slog.Logger
}

// NewExecRunner returns a runner for binary, defaulting to "ffmpeg".
func NewExecRunner(binary string, logger *slog.Logger) *ExecRunner {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &ExecRunner{Binary: binary, Logger: logging.NewComponentLogger(logger, "ffmpeg")}
}

// Run executes cmd and maps a non-zero exit to services.ErrExternalTool with
// ffmpeg's stderr attached.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	logging.WithContext(ctx, r.Logger).Debug("ffmpeg invocation",
		logging.String("binary", r.Binary),
		logging.String("args", strings.Join(cmd.Args, " ")),
	)
	proc := exec.CommandContext(ctx, r.Binary, cmd.Args...)
	output, err := proc.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = "ffmpeg exited with error"
		}
		return services.Wrap(services.ErrExternalTool, cmd.Stage, "ffmpeg", detail, err)
	}
	return nil
}
