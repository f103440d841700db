package stream

import "time"

// TargetDate returns the business date a run should publish for: now's
// date on Monday through Friday, otherwise the most recent prior weekday.
func TargetDate(now time.Time) time.Time {
	if isBusinessDay(now) {
		return now
	}
	return PreviousBusinessDate(now)
}

// PreviousBusinessDate walks strictly backward from d to the nearest
// weekday.
func PreviousBusinessDate(d time.Time) time.Time {
	for {
		d = d.AddDate(0, 0, -1)
		if isBusinessDay(d) {
			return d
		}
	}
}

func isBusinessDay(d time.Time) bool {
	weekday := d.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}
