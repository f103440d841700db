package tasks

import (
	"time"

	"github.com/cheeseb1234/fhrss/app/database"
)

// FeedStore is the persisted feed document surface used by tasks.
type FeedStore interface {
	EnsureExists() error
	Append(title, link string, publishedAt time.Time) (bool, error)
}

// RunRecorder journals completed runs. A nil recorder disables journaling.
type RunRecorder interface {
	RecordRun(run database.Run) error
}
