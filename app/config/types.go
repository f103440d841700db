package config

// FeedConfig is the full definition of the published feed and the
// channel it is sourced from
type FeedConfig struct {
	Feed      FeedInfo      `yaml:"feed"`
	Channel   ChannelInfo   `yaml:"channel"`
	Selection SelectionInfo `yaml:"selection"`
	Extract   ExtractInfo   `yaml:"extract"`
}

// FeedInfo contains the fixed channel metadata of the output document
type FeedInfo struct {
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
	SelfURL     string `yaml:"self_url"`
	ItemPrefix  string `yaml:"item_prefix"`
}

// ChannelInfo identifies the source channel's live tab
type ChannelInfo struct {
	Handle     string `yaml:"handle"`
	LiveTabURL string `yaml:"live_tab_url"`
}

// SelectionInfo configures stream selection
type SelectionInfo struct {
	ExcludedTerms []string `yaml:"excluded_terms"`
}

// ExtractInfo configures link extraction
type ExtractInfo struct {
	AllowedPrefixes []string `yaml:"allowed_prefixes"`
	MaxComments     int      `yaml:"max_comments"`
}
