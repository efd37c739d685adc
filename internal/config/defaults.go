package config

const (
	defaultConfigPath  = "~/.config/chaptercut/config.toml"
	defaultOutputDir   = "~/Music/chaptercut"
	defaultLogDir      = "~/.local/share/chaptercut/logs"
	defaultMaxComments = 1000
	defaultMinMarkers  = 5
	defaultThreshold   = 0.5
	defaultFade        = FadeNone
	defaultFadeSeconds = 2
	defaultWorkers     = 4
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	// commentPageSize is the YouTube commentThreads page size; max_comments
	// must be a whole number of pages.
	commentPageSize = 100
)

// Fade modes accepted by postprocess.fade.
const (
	FadeNone = "none"
	FadeIn   = "in"
	FadeOut  = "out"
	FadeBoth = "both"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		YouTube: YouTube{
			MaxComments: defaultMaxComments,
		},
		Timestamps: Timestamps{
			MinMarkers:  defaultMinMarkers,
			Threshold:   defaultThreshold,
			SaveSidecar: true,
		},
		Postprocess: Postprocess{
			Fade:        defaultFade,
			FadeSeconds: defaultFadeSeconds,
			Workers:     defaultWorkers,
			VerifyTags:  true,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
