package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"chaptercut/internal/services"
)

// AllowedTags lists the album-level tags that may be set through metadata
// overrides.
var AllowedTags = []string{"album", "composer", "genre", "artist", "album_artist", "date"}

// ValidateTags rejects any key outside AllowedTags.
func ValidateTags(tags map[string]string) error {
	for key := range tags {
		if !slices.Contains(AllowedTags, key) {
			return services.Wrap(services.ErrConfiguration, "metadata", "validate",
				fmt.Sprintf("unsupported tag %q (allowed: %s)", key, strings.Join(AllowedTags, ", ")), nil)
		}
	}
	return nil
}

// LoadMetadataFile reads a flat tag object from a .json or .toml file.
func LoadMetadataFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "metadata", "read", path, err)
	}
	raw := map[string]string{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "metadata", "read", fmt.Sprintf("%s: expected .json or .toml", path), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "metadata", "parse", path, err)
	}
	tags := make(map[string]string, len(raw))
	for key, value := range raw {
		tags[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return tags, nil
}

// AlbumTags layers overrides onto defaults: defaults first, then the metadata
// file, then inline tags. Empty values remove a tag. The result is validated
// against AllowedTags.
func (c *Config) AlbumTags(defaults map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(defaults))
	apply := func(tags map[string]string) {
		for key, value := range tags {
			if value == "" {
				delete(out, key)
				continue
			}
			out[key] = value
		}
	}
	apply(defaults)
	if c.Metadata.File != "" {
		fileTags, err := LoadMetadataFile(c.Metadata.File)
		if err != nil {
			return nil, err
		}
		apply(fileTags)
	}
	apply(c.Metadata.Tags)
	if err := ValidateTags(out); err != nil {
		return nil, err
	}
	return out, nil
}
