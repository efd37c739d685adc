package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizePostprocess()
	if err := c.normalizeMetadata(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YT_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.Endpoint = strings.TrimSpace(c.YouTube.Endpoint)
}

func (c *Config) normalizePostprocess() {
	c.Postprocess.Fade = strings.ToLower(strings.TrimSpace(c.Postprocess.Fade))
	if c.Postprocess.Fade == "" {
		c.Postprocess.Fade = defaultFade
	}
}

func (c *Config) normalizeMetadata() error {
	if strings.TrimSpace(c.Metadata.File) == "" {
		c.Metadata.File = ""
	} else {
		var err error
		if c.Metadata.File, err = expandPath(strings.TrimSpace(c.Metadata.File)); err != nil {
			return fmt.Errorf("metadata.file: %w", err)
		}
	}
	if len(c.Metadata.Tags) > 0 {
		normalized := make(map[string]string, len(c.Metadata.Tags))
		for key, value := range c.Metadata.Tags {
			normalized[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
		c.Metadata.Tags = normalized
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpeg
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobe
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "pretty":
		c.Logging.Format = "console"
	default:
		c.Logging.Format = format
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
