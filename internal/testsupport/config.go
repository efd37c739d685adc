package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"chaptercut/internal/config"
)

// ConfigOption adjusts the config returned by NewConfig.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t    testing.TB
	base string
	cfg  *config.Config
}

// NewConfig returns a validated-shape config rooted in t.TempDir(): output and
// log folders live under the temp root, the API key is a placeholder, and two
// workers are used so concurrency paths run in every test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.YouTube.APIKey = "test"
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Postprocess.Workers = 2

	b := &configBuilder{t: t, base: base, cfg: &cfg}
	for _, opt := range opts {
		opt(b)
	}
	return b.cfg
}

// WithoutTagVerification disables the audiometa read-back; stubbed tools
// write placeholder bytes that carry no tags.
func WithoutTagVerification() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Postprocess.VerifyTags = false
	}
}

// WithFade sets the fade mode and its length in seconds.
func WithFade(mode string, seconds float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Postprocess.Fade = mode
		b.cfg.Postprocess.FadeSeconds = seconds
	}
}

// WithMetadataTags sets inline album tag overrides.
func WithMetadataTags(tags map[string]string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metadata.Tags = tags
	}
}

// WithThreshold sets the coverage threshold candidates must reach.
func WithThreshold(threshold float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Timestamps.Threshold = threshold
	}
}

// WithToolScripts writes executable shell scripts for ffmpeg and ffprobe under
// <base>/bin and points the tools section at them. An empty body leaves the
// corresponding tool untouched.
func WithToolScripts(ffmpegBody, ffprobeBody string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.base, "bin")
		if ffmpegBody != "" {
			b.cfg.Tools.FFmpeg = writeExecutable(b.t, filepath.Join(binDir, "ffmpeg"), ffmpegBody)
		}
		if ffprobeBody != "" {
			b.cfg.Tools.FFprobe = writeExecutable(b.t, filepath.Join(binDir, "ffprobe"), ffprobeBody)
		}
	}
}

func writeExecutable(t testing.TB, path, body string) string {
	t.Helper()
	WriteText(t, path, body)
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	return path
}

// BaseDir returns the temp root backing cfg.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
