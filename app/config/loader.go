package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the feed definition
type Loader struct {
	path string
}

// NewLoader creates a new feed definition loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the YAML feed definition, applies defaults, and validates it
func (l *Loader) Load() (*FeedConfig, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config FeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&config)

	if err := l.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", l.path, err)
	}

	return &config, nil
}

// setDefaults applies default values to the feed definition
func (l *Loader) setDefaults(config *FeedConfig) {
	if config.Feed.ItemPrefix == "" {
		config.Feed.ItemPrefix = "Fun Half"
	}
	if config.Channel.LiveTabURL == "" && config.Channel.Handle != "" {
		config.Channel.LiveTabURL = fmt.Sprintf(
			"https://www.youtube.com/%s/videos?view=2&live_view=502&sort=dd",
			config.Channel.Handle)
	}
	if len(config.Selection.ExcludedTerms) == 0 {
		config.Selection.ExcludedTerms = []string{"clip", "members", "premiere"}
	}
	if len(config.Extract.AllowedPrefixes) == 0 {
		config.Extract.AllowedPrefixes = []string{
			"https://www.youtube.com/live/",
			"https://youtube.com/live/",
			"https://youtu.be/",
		}
	}
	if config.Extract.MaxComments == 0 {
		config.Extract.MaxComments = 50
	}
}

// validate validates the feed definition
func (l *Loader) validate(config *FeedConfig) error {
	if config.Feed.Title == "" {
		return fmt.Errorf("feed title is required")
	}
	if config.Feed.SelfURL == "" {
		return fmt.Errorf("feed self URL is required")
	}
	if config.Channel.LiveTabURL == "" {
		return fmt.Errorf("channel handle or live tab URL is required")
	}
	if config.Extract.MaxComments < 0 {
		return fmt.Errorf("max comments must be non-negative")
	}
	return nil
}
