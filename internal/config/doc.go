// Package config loads, normalizes, and validates chaptercut configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YT_API_KEY. The Config type centralizes every knob the CLI and pipeline
// need, from the output folder root to fade mode and album tag overrides.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
