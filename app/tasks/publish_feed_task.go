package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheeseb1234/fhrss/app/database"
	"github.com/cheeseb1234/fhrss/app/provider"
	"github.com/cheeseb1234/fhrss/app/stream"
)

// PublishFeedTask runs the whole pipeline once: resolve the target
// business date, select that date's livestream, extract the topical
// link, and merge it into the feed document. Before the cutoff time a
// missing link ends the run quietly; at or after it the previous
// business day's stream is tried from the already-fetched candidates.
type PublishFeedTask struct {
	Task
	provider     provider.Interface
	selector     *stream.Selector
	extractor    *stream.Extractor
	store        FeedStore
	runs         RunRecorder
	itemPrefix   string
	cutoffHour   int
	cutoffMinute int

	now func() time.Time
}

func NewPublishFeedTask(p provider.Interface, selector *stream.Selector, extractor *stream.Extractor,
	store FeedStore, runs RunRecorder, itemPrefix string, cutoffHour, cutoffMinute int) *PublishFeedTask {
	return &PublishFeedTask{
		Task:         NewTask(TaskTypePublishFeed),
		provider:     p,
		selector:     selector,
		extractor:    extractor,
		store:        store,
		runs:         runs,
		itemPrefix:   itemPrefix,
		cutoffHour:   cutoffHour,
		cutoffMinute: cutoffMinute,
		now:          time.Now,
	}
}

func (t *PublishFeedTask) Execute(ctx context.Context) error {
	t.Start()
	now := t.now()
	target := stream.TargetDate(now)
	slog.Debug("Resolved target date", "target_date", formatDate(target))

	if err := t.store.EnsureExists(); err != nil {
		return fmt.Errorf("failed to ensure feed document: %w", err)
	}

	candidates, err := t.provider.ListCandidates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}

	selected := t.selector.Run(candidates, target)
	if selected == nil {
		slog.Info("No stream found for target date", "target_date", formatDate(target))
		t.record(now, target, database.OutcomeNoStream, nil, "")
		return nil
	}
	slog.Debug("Selected stream", "id", selected.ID, "title", selected.Title)

	link, err := t.extractLink(ctx, selected)
	if err != nil {
		return err
	}

	if link == "" && t.beforeCutoff(now) {
		slog.Info("No link found before cutoff, will retry on the next scheduled run",
			"stream", selected.Title)
		t.record(now, target, database.OutcomeNoLinkBeforeCutoff, selected, "")
		return nil
	}

	if link == "" {
		return t.fallbackToPreviousDay(ctx, now, target, candidates)
	}

	title := fmt.Sprintf("%s – %s", t.itemPrefix, formatDate(target))
	inserted, err := t.store.Append(title, link, now)
	if err != nil {
		return fmt.Errorf("failed to append feed item: %w", err)
	}

	outcome := database.OutcomePublished
	if !inserted {
		outcome = database.OutcomeDuplicate
	}
	slog.Info("Run complete", "outcome", outcome, "link", link)
	t.record(now, target, outcome, selected, link)
	return nil
}

// fallbackToPreviousDay re-selects against the previous business date
// from the candidate list fetched earlier in the run. A stream that has
// already scrolled out of that listing is silently missed; acceptable
// for the single-page listing this pipeline works from.
func (t *PublishFeedTask) fallbackToPreviousDay(ctx context.Context, now, target time.Time, candidates []provider.Candidate) error {
	previous := stream.PreviousBusinessDate(target)
	selected := t.selector.Run(candidates, previous)
	if selected == nil {
		slog.Info("No stream found for previous business date", "date", formatDate(previous))
		t.record(now, target, database.OutcomeNoLink, nil, "")
		return nil
	}

	link, err := t.extractLink(ctx, selected)
	if err != nil {
		return err
	}
	if link == "" {
		slog.Info("No link found on the previous business day's stream", "stream", selected.Title)
		t.record(now, target, database.OutcomeNoLink, selected, "")
		return nil
	}

	title := fmt.Sprintf("%s – %s (from previous weekday’s live)", t.itemPrefix, formatDate(previous))
	inserted, err := t.store.Append(title, link, now)
	if err != nil {
		return fmt.Errorf("failed to append feed item: %w", err)
	}

	outcome := database.OutcomePublishedFallback
	if !inserted {
		outcome = database.OutcomeDuplicate
	}
	slog.Info("Run complete", "outcome", outcome, "link", link)
	t.record(now, target, outcome, selected, link)
	return nil
}

func (t *PublishFeedTask) extractLink(ctx context.Context, selected *stream.SelectedStream) (string, error) {
	videoURL := selected.URL
	if videoURL == "" {
		videoURL = "https://www.youtube.com/watch?v=" + selected.ID
	}

	metadata, err := t.provider.FetchVideoMetadata(ctx, videoURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video metadata: %w", err)
	}
	return t.extractor.FromMetadata(metadata), nil
}

func (t *PublishFeedTask) beforeCutoff(now time.Time) bool {
	return now.Hour()*60+now.Minute() < t.cutoffHour*60+t.cutoffMinute
}

// record journals the run outcome. Journal failures never affect the
// pipeline result.
func (t *PublishFeedTask) record(started, target time.Time, outcome string, selected *stream.SelectedStream, link string) {
	if t.runs == nil {
		return
	}
	run := database.Run{
		ID:         t.ID,
		StartedAt:  started,
		FinishedAt: t.now(),
		TargetDate: formatDate(target),
		Outcome:    outcome,
		Link:       link,
	}
	if selected != nil {
		run.StreamID = selected.ID
		run.StreamTitle = selected.Title
	}
	if err := t.runs.RecordRun(run); err != nil {
		slog.Warn("Failed to record run in journal", "error", err)
	}
}

func formatDate(d time.Time) string {
	return d.Format("2006-01-02")
}
