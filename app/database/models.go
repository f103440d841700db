package database

import (
	"time"
)

// Run outcomes. Only provider failures terminate a run with an error;
// every outcome below is a normal completion.
const (
	OutcomePublished          = "published"
	OutcomePublishedFallback  = "published_fallback"
	OutcomeDuplicate          = "duplicate"
	OutcomeNoStream           = "no_stream"
	OutcomeNoLinkBeforeCutoff = "no_link_before_cutoff"
	OutcomeNoLink             = "no_link"
)

// Run is one journal row recording a single pipeline execution.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	TargetDate  string // YYYY-MM-DD
	Outcome     string
	StreamID    string
	StreamTitle string
	Link        string
}
