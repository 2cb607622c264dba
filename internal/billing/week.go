// Package billing holds the pure billing math: week bucketing, revenue
// allocation, debt positions, ledger reducers and dashboard rollups.
// Everything here is side-effect free and operates on data already
// loaded by the repositories.
package billing

import "time"

// WeekMonday returns the Monday of t's week at midnight, in t's
// location. Sunday belongs to the week that started six days earlier.
func WeekMonday(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(time.Monday - day.Weekday())
	if day.Weekday() == time.Sunday {
		offset = -6
	}
	return day.AddDate(0, 0, offset)
}

// WeekKey is the canonical YYYY-MM-DD key of a week's Monday
func WeekKey(monday time.Time) string {
	return monday.Format("2006-01-02")
}

// NextWeek steps a Monday forward by one week
func NextWeek(monday time.Time) time.Time {
	return monday.AddDate(0, 0, 7)
}
