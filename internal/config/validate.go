package config

import (
	"fmt"

	"chaptercut/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateTimestamps(); err != nil {
		return err
	}
	if err := c.validatePostprocess(); err != nil {
		return err
	}
	if err := ValidateTags(c.Metadata.Tags); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return services.Wrap(services.ErrConfiguration, "config", "", fmt.Sprintf(format, args...), nil)
}

func (c *Config) validateYouTube() error {
	if c.YouTube.MaxComments <= 0 {
		return invalid("youtube.max_comments must be positive")
	}
	if c.YouTube.MaxComments%commentPageSize != 0 {
		return invalid("youtube.max_comments must be a multiple of %d (got %d)", commentPageSize, c.YouTube.MaxComments)
	}
	return nil
}

func (c *Config) validateTimestamps() error {
	if c.Timestamps.MinMarkers < 1 {
		return invalid("timestamps.min_markers must be at least 1")
	}
	if c.Timestamps.Threshold < 0 || c.Timestamps.Threshold > 1 {
		return invalid("timestamps.threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validatePostprocess() error {
	switch c.Postprocess.Fade {
	case FadeNone, FadeIn, FadeOut, FadeBoth:
	default:
		return invalid("postprocess.fade must be one of none, in, out, both (got %q)", c.Postprocess.Fade)
	}
	if c.Postprocess.FadeSeconds < 0 {
		return invalid("postprocess.fade_seconds must be non-negative")
	}
	if c.Postprocess.Fade != FadeNone && c.Postprocess.FadeSeconds <= 0 {
		return invalid("postprocess.fade_seconds must be positive when postprocess.fade is %q", c.Postprocess.Fade)
	}
	if c.Postprocess.Workers < 1 {
		return invalid("postprocess.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return invalid("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
