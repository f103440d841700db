package stream

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/cheeseb1234/fhrss/app/provider"
)

// Tolerates the common dash variants and arbitrary whitespace between
// the two words of the phrase.
var phrasePattern = regexp.MustCompile(`(?i)fun\s*[-\x{2010}-\x{2015}\x{2212}]?\s*half`)

var videoURLPattern = regexp.MustCompile(`https?://(?:www\.)?(?:youtube\.com/live/|youtu\.be/|youtube\.com/watch\?v=)[A-Za-z0-9_-]{6,}`)

// Extractor locates the topical cross-link in a video's descriptive
// text and comment stream.
type Extractor struct {
	allowedPrefixes []string
	maxComments     int
}

func NewExtractor(allowedPrefixes []string, maxComments int) *Extractor {
	return &Extractor{allowedPrefixes: allowedPrefixes, maxComments: maxComments}
}

// FromMetadata searches the description, then the pinned comment, then
// the leading comments in provider order. First match wins.
func (e *Extractor) FromMetadata(metadata *provider.VideoMetadata) string {
	if metadata == nil {
		return ""
	}
	if link := e.FromText(metadata.Description); link != "" {
		return link
	}
	for _, comment := range metadata.Comments {
		if comment.Pinned {
			if link := e.FromText(comment.Text); link != "" {
				return link
			}
			break
		}
	}
	for i, comment := range metadata.Comments {
		if i >= e.maxComments {
			break
		}
		if link := e.FromText(comment.Text); link != "" {
			return link
		}
	}
	return ""
}

// FromText scans text line by line. A line must contain the topical
// phrase; the first URL on such a line that normalizes to an
// allow-listed prefix is returned. Pure function over strings.
func (e *Extractor) FromText(text string) string {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if !phrasePattern.MatchString(line) {
			continue
		}
		for _, match := range videoURLPattern.FindAllString(line, -1) {
			if link := e.normalize(match); link != "" {
				return link
			}
		}
	}
	return ""
}

// normalize strips query and fragment suffixes, rewrites watch?v= URLs
// to the canonical live/<id> form, and rejects anything outside the
// allow-listed prefixes.
func (e *Extractor) normalize(raw string) string {
	link := raw
	if i := strings.IndexAny(link, "?&#"); i >= 0 {
		link = link[:i]
	}
	if strings.Contains(raw, "watch") && strings.Contains(raw, "v=") {
		if parsed, err := url.Parse(raw); err == nil {
			if id := parsed.Query().Get("v"); id != "" {
				link = "https://youtube.com/live/" + id
			}
		}
	}
	for _, prefix := range e.allowedPrefixes {
		if strings.HasPrefix(link, prefix) {
			return link
		}
	}
	return ""
}
