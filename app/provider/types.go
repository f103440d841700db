package provider

import (
	"context"
	"fmt"
	"time"
)

// Candidate is a single raw entry from the channel's live tab listing.
// Missing fields are tolerated: duration defaults to zero and an unknown
// upload date is nil.
type Candidate struct {
	ID              string
	URL             string
	Title           string
	DurationSeconds int64
	UploadDate      *time.Time // calendar date in the operating timezone
}

// Comment is a single comment on a video
type Comment struct {
	Text   string
	Pinned bool
}

// VideoMetadata is the full per-video detail needed for link extraction
type VideoMetadata struct {
	Description string
	Comments    []Comment
}

// Interface is the capability surface of the external video provider
type Interface interface {
	ListCandidates(ctx context.Context) ([]Candidate, error)
	FetchVideoMetadata(ctx context.Context, url string) (*VideoMetadata, error)
}

// Error indicates a failure of the external video provider. It is fatal
// for the current run; retries come from the next scheduled invocation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
