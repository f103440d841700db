package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cheeseb1234/fhrss/app/cfg"
	"github.com/cheeseb1234/fhrss/app/config"
	"github.com/cheeseb1234/fhrss/app/database"
	"github.com/cheeseb1234/fhrss/app/feed"
	"github.com/cheeseb1234/fhrss/app/provider"
	"github.com/cheeseb1234/fhrss/app/stream"
	"github.com/cheeseb1234/fhrss/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	slog.Debug("Starting fhrss", "version", appCfg.Version)

	feedConfig, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		log.Fatalf("Failed to load feed definition: %v", err)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open run journal:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	slog.Debug("Run journal ready", "schema_version", version, "dirty", dirty)

	runRepo := database.NewRunRepository(db)
	if recent, err := runRepo.GetRecentRuns(1); err == nil && len(recent) > 0 {
		slog.Debug("Previous run",
			"outcome", recent[0].Outcome,
			"target_date", recent[0].TargetDate,
			"started_at", recent[0].StartedAt)
	}

	client := provider.NewClient(
		appCfg.YtDlpPath,
		time.Duration(appCfg.YtDlpTimeout)*time.Second,
		feedConfig.Channel.LiveTabURL,
		feedConfig.Extract.MaxComments,
		time.Local)

	store := feed.NewStore(filepath.Join(appCfg.OutputDir, appCfg.FeedFile), feed.Metadata{
		Title:       feedConfig.Feed.Title,
		Link:        feedConfig.Feed.Link,
		Description: feedConfig.Feed.Description,
		SelfURL:     feedConfig.Feed.SelfURL,
	})

	selector := stream.NewSelector(feedConfig.Selection.ExcludedTerms)
	extractor := stream.NewExtractor(feedConfig.Extract.AllowedPrefixes, feedConfig.Extract.MaxComments)

	task := tasks.NewPublishFeedTask(client, selector, extractor, store, runRepo,
		feedConfig.Feed.ItemPrefix, appCfg.CutoffHour, appCfg.CutoffMinute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := task.Execute(ctx); err != nil {
		var provErr *provider.Error
		if errors.As(err, &provErr) {
			slog.Error("Provider failure", "op", provErr.Op, "error", provErr.Err)
		} else {
			slog.Error("Run failed", "error", err)
		}
		os.Exit(1)
	}

	slog.Debug("Run finished", "task_id", task.GetID(), "duration", task.GetDuration())
}
