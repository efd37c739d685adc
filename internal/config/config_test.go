package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"chaptercut/internal/config"
	"chaptercut/internal/services"
)

func TestLoadDefaultConfigUsesEnvKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("YT_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, "Music", "chaptercut"); cfg.Paths.OutputDir != want {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "chaptercut", "logs"); cfg.Paths.LogDir != want {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, want)
	}
	if cfg.YouTube.APIKey != "test-key" {
		t.Fatalf("expected API key from env, got %q", cfg.YouTube.APIKey)
	}
	if cfg.YouTube.MaxComments != 1000 {
		t.Fatalf("unexpected max comments: %d", cfg.YouTube.MaxComments)
	}
	if cfg.Timestamps.MinMarkers != 5 || cfg.Timestamps.Threshold != 0.5 {
		t.Fatalf("unexpected timestamp defaults: %+v", cfg.Timestamps)
	}
	if cfg.Postprocess.Fade != config.FadeNone || cfg.Postprocess.Workers != 4 {
		t.Fatalf("unexpected postprocess defaults: %+v", cfg.Postprocess)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
}

func TestLoadFallsBackToSecondaryEnvKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("YT_API_KEY", "")
	os.Unsetenv("YT_API_KEY")
	t.Setenv("YOUTUBE_API_KEY", " other-key ")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.YouTube.APIKey != "other-key" {
		t.Fatalf("expected trimmed fallback key, got %q", cfg.YouTube.APIKey)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
output_dir = "~/cuts"

[youtube]
api_key = "abc"
max_comments = 300

[timestamps]
threshold = 0.75
choose_comment = true

[postprocess]
fade = "Both"
fade_seconds = 0.5
workers = 2

[metadata.tags]
Genre = "Soundtrack"

[logging]
format = "json"
level = "DEBUG"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "cuts") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.YouTube.MaxComments != 300 || cfg.Timestamps.Threshold != 0.75 || !cfg.Timestamps.ChooseComment {
		t.Fatalf("unexpected values: %+v %+v", cfg.YouTube, cfg.Timestamps)
	}
	if cfg.Postprocess.Fade != config.FadeBoth || cfg.FadeDuration() != 500*time.Millisecond || cfg.Postprocess.Workers != 2 {
		t.Fatalf("unexpected postprocess: %+v", cfg.Postprocess)
	}
	if cfg.Metadata.Tags["genre"] != "Soundtrack" {
		t.Fatalf("expected normalized tag key, got %v", cfg.Metadata.Tags)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"max comments page", func(c *config.Config) { c.YouTube.MaxComments = 150 }, "youtube.max_comments"},
		{"max comments zero", func(c *config.Config) { c.YouTube.MaxComments = 0 }, "youtube.max_comments"},
		{"min markers", func(c *config.Config) { c.Timestamps.MinMarkers = 0 }, "timestamps.min_markers"},
		{"threshold", func(c *config.Config) { c.Timestamps.Threshold = 1.5 }, "timestamps.threshold"},
		{"fade mode", func(c *config.Config) { c.Postprocess.Fade = "sideways" }, "postprocess.fade"},
		{"fade seconds", func(c *config.Config) { c.Postprocess.Fade = config.FadeIn; c.Postprocess.FadeSeconds = 0 }, "postprocess.fade_seconds"},
		{"workers", func(c *config.Config) { c.Postprocess.Workers = 0 }, "postprocess.workers"},
		{"tag", func(c *config.Config) { c.Metadata.Tags = map[string]string{"title": "x"} }, "unsupported tag"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestAlbumTagsLayering(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tags.json")
	if err := os.WriteFile(file, []byte(`{"genre": "Score", "Composer": "Howard Shore", "album_artist": ""}`), 0o644); err != nil {
		t.Fatalf("write tags: %v", err)
	}
	cfg := config.Default()
	cfg.Metadata.File = file
	cfg.Metadata.Tags = map[string]string{"genre": "Soundtrack"}

	tags, err := cfg.AlbumTags(map[string]string{"album": "Fellowship", "album_artist": "Channel", "date": "2001"})
	if err != nil {
		t.Fatalf("AlbumTags: %v", err)
	}
	want := map[string]string{"album": "Fellowship", "composer": "Howard Shore", "genre": "Soundtrack", "date": "2001"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for k, v := range want {
		if tags[k] != v {
			t.Fatalf("tag %s = %q, want %q", k, tags[k], v)
		}
	}
}

func TestAlbumTagsRejectsUnknownKeyFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tags.toml")
	if err := os.WriteFile(file, []byte("title = \"nope\"\n"), 0o644); err != nil {
		t.Fatalf("write tags: %v", err)
	}
	cfg := config.Default()
	cfg.Metadata.File = file
	if _, err := cfg.AlbumTags(nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample does not parse: %v", err)
	}
	if cfg.Postprocess.Workers != 4 || cfg.YouTube.MaxComments != 1000 {
		t.Fatalf("sample drifted from defaults: %+v %+v", cfg.Postprocess, cfg.YouTube)
	}
	t.Setenv("HOME", t.TempDir())
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("Load sample: %v", err)
	}
}

func TestEncodeIncludesSections(t *testing.T) {
	cfg := config.Default()
	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, section := range []string{"[paths]", "[youtube]", "[postprocess]", "[logging]"} {
		if !strings.Contains(out, section) {
			t.Fatalf("encoded config missing %s:\n%s", section, out)
		}
	}
}
