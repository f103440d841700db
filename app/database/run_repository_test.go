package database

import (
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestRecordRun_AndGetRecentRuns(t *testing.T) {
	repo := NewRunRepository(testDB(t))

	started := time.Date(2025, 1, 8, 12, 30, 0, 0, time.UTC)
	first := Run{
		ID:          "run-1",
		StartedAt:   started,
		FinishedAt:  started.Add(40 * time.Second),
		TargetDate:  "2025-01-08",
		Outcome:     OutcomePublished,
		StreamID:    "abc123XYZ",
		StreamTitle: "MR Live 1/8/25",
		Link:        "https://youtube.com/live/abc123XYZ",
	}
	second := Run{
		ID:         "run-2",
		StartedAt:  started.Add(time.Hour),
		FinishedAt: started.Add(time.Hour + 5*time.Second),
		TargetDate: "2025-01-08",
		Outcome:    OutcomeDuplicate,
	}

	if err := repo.RecordRun(first); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := repo.RecordRun(second); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	runs, err := repo.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-2" {
		t.Errorf("Expected newest run first, got '%s'", runs[0].ID)
	}
	if runs[1].Outcome != OutcomePublished {
		t.Errorf("Expected outcome '%s', got '%s'", OutcomePublished, runs[1].Outcome)
	}
	if runs[1].Link != "https://youtube.com/live/abc123XYZ" {
		t.Errorf("Unexpected link: %s", runs[1].Link)
	}
}

func TestGetRecentRuns_Limit(t *testing.T) {
	repo := NewRunRepository(testDB(t))

	started := time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := Run{
			ID:         string(rune('a' + i)),
			StartedAt:  started.Add(time.Duration(i) * time.Minute),
			FinishedAt: started.Add(time.Duration(i)*time.Minute + time.Second),
			TargetDate: "2025-01-08",
			Outcome:    OutcomeNoStream,
		}
		if err := repo.RecordRun(run); err != nil {
			t.Fatalf("Failed to record run %d: %v", i, err)
		}
	}

	runs, err := repo.GetRecentRuns(3)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runs))
	}
}

func TestGetRunCount(t *testing.T) {
	repo := NewRunRepository(testDB(t))

	count, err := repo.GetRunCount()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 runs, got %d", count)
	}

	run := Run{
		ID:         "run-1",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		TargetDate: "2025-01-08",
		Outcome:    OutcomeNoLink,
	}
	if err := repo.RecordRun(run); err != nil {
		t.Fatalf("Failed to record run: %v", err)
	}

	count, err = repo.GetRunCount()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 run, got %d", count)
	}
}
