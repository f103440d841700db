package stream

import (
	"testing"
	"time"
)

func TestTargetDate_Weekday(t *testing.T) {
	// Wednesday
	now := time.Date(2025, 1, 8, 10, 30, 0, 0, time.UTC)
	target := TargetDate(now)
	if !target.Equal(now) {
		t.Errorf("Expected weekday to map to itself, got %v", target)
	}
}

func TestTargetDate_Saturday(t *testing.T) {
	now := time.Date(2025, 1, 11, 10, 30, 0, 0, time.UTC)
	target := TargetDate(now)
	if target.Weekday() != time.Friday {
		t.Errorf("Expected Friday, got %v", target.Weekday())
	}
	if target.Day() != 10 {
		t.Errorf("Expected the 10th, got day %d", target.Day())
	}
}

func TestTargetDate_Sunday(t *testing.T) {
	now := time.Date(2025, 1, 12, 10, 30, 0, 0, time.UTC)
	target := TargetDate(now)
	if target.Weekday() != time.Friday {
		t.Errorf("Expected Friday, got %v", target.Weekday())
	}
	if target.Day() != 10 {
		t.Errorf("Expected the 10th, got day %d", target.Day())
	}
}

func TestPreviousBusinessDate_Monday(t *testing.T) {
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	prev := PreviousBusinessDate(monday)
	if prev.Weekday() != time.Friday {
		t.Errorf("Expected Friday before a Monday, got %v", prev.Weekday())
	}
	if prev.Day() != 10 {
		t.Errorf("Expected the 10th, got day %d", prev.Day())
	}
}

func TestPreviousBusinessDate_MidWeek(t *testing.T) {
	thursday := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)
	prev := PreviousBusinessDate(thursday)
	if prev.Weekday() != time.Wednesday {
		t.Errorf("Expected Wednesday before a Thursday, got %v", prev.Weekday())
	}
}

func TestPreviousBusinessDate_IsStrict(t *testing.T) {
	friday := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	prev := PreviousBusinessDate(friday)
	if prev.Day() == friday.Day() {
		t.Error("PreviousBusinessDate must walk strictly backward")
	}
	if prev.Weekday() != time.Thursday {
		t.Errorf("Expected Thursday before a Friday, got %v", prev.Weekday())
	}
}
