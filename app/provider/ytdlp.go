package provider

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

var _ Interface = (*Client)(nil)

// Client sources candidates and video metadata from yt-dlp, invoked as
// a subprocess emitting JSON.
type Client struct {
	binPath     string
	timeout     time.Duration
	liveTabURL  string
	maxComments int
	location    *time.Location
}

func NewClient(binPath string, timeout time.Duration, liveTabURL string, maxComments int, location *time.Location) *Client {
	return &Client{
		binPath:     binPath,
		timeout:     timeout,
		liveTabURL:  liveTabURL,
		maxComments: maxComments,
		location:    location,
	}
}

// ListCandidates queries the channel's live tab, most recent first as
// sorted by the provider.
func (c *Client) ListCandidates(ctx context.Context) ([]Candidate, error) {
	data, err := c.run(ctx,
		"--dump-single-json",
		"--flat-playlist",
		"--skip-download",
		"--no-warnings",
		"--no-check-certificates",
		c.liveTabURL)
	if err != nil {
		return nil, &Error{Op: "list candidates", Err: err}
	}

	candidates, err := parseListPayload(data, c.location)
	if err != nil {
		return nil, &Error{Op: "list candidates", Err: err}
	}

	slog.Debug("Listed live tab entries", "count", len(candidates))
	return candidates, nil
}

// FetchVideoMetadata retrieves the description and comment stream of a
// single video.
func (c *Client) FetchVideoMetadata(ctx context.Context, url string) (*VideoMetadata, error) {
	data, err := c.run(ctx,
		"--dump-single-json",
		"--skip-download",
		"--no-warnings",
		"--no-check-certificates",
		"--write-comments",
		"--extractor-args", fmt.Sprintf("youtube:max_comments=%d;player_client=android", c.maxComments),
		url)
	if err != nil {
		return nil, &Error{Op: "fetch video metadata", Err: err}
	}

	metadata, err := parseMetadataPayload(data)
	if err != nil {
		return nil, &Error{Op: "fetch video metadata", Err: err}
	}

	slog.Debug("Fetched video metadata", "url", url, "comments", len(metadata.Comments))
	return metadata, nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			slog.Debug("yt-dlp stderr", "output", msg)
		}
		return nil, fmt.Errorf("failed to run yt-dlp: %w", err)
	}

	return stdout.Bytes(), nil
}

type listPayload struct {
	Entries []listEntry `json:"entries"`
}

type listEntry struct {
	ID         string  `json:"id"`
	URL        string  `json:"url"`
	WebpageURL string  `json:"webpage_url"`
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	UploadDate string  `json:"upload_date"`
}

func parseListPayload(data []byte, location *time.Location) ([]Candidate, error) {
	var payload listPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse listing output: %w", err)
	}

	candidates := make([]Candidate, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		candidates = append(candidates, Candidate{
			ID:              entry.ID,
			URL:             cmp.Or(entry.URL, entry.WebpageURL),
			Title:           entry.Title,
			DurationSeconds: int64(entry.Duration),
			UploadDate:      localDate(entry.UploadDate, location),
		})
	}
	return candidates, nil
}

type metadataPayload struct {
	Description string           `json:"description"`
	Comments    []commentPayload `json:"comments"`
}

type commentPayload struct {
	Text     string `json:"text"`
	Pinned   bool   `json:"pinned"`
	IsPinned bool   `json:"is_pinned"`
}

func parseMetadataPayload(data []byte) (*VideoMetadata, error) {
	var payload metadataPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse metadata output: %w", err)
	}

	metadata := &VideoMetadata{Description: payload.Description}
	for _, comment := range payload.Comments {
		metadata.Comments = append(metadata.Comments, Comment{
			Text:   comment.Text,
			Pinned: comment.Pinned || comment.IsPinned,
		})
	}
	return metadata, nil
}

// localDate converts the platform's YYYYMMDD upload date, taken as UTC
// midnight, to a calendar date in the operating timezone.
func localDate(uploadDate string, location *time.Location) *time.Time {
	if uploadDate == "" {
		return nil
	}
	parsed, err := time.ParseInLocation("20060102", uploadDate, time.UTC)
	if err != nil {
		return nil
	}
	local := parsed.In(location)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	return &date
}
