package timeutil

import (
	"time"
)

// MSK is the Moscow time location (UTC+3), the business timezone
var MSK *time.Location

func init() {
	var err error
	MSK, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Fallback: create fixed zone if Europe/Moscow not available
		MSK = time.FixedZone("MSK", 3*60*60) // UTC+3
	}
}

// Now returns the current time in MSK
func Now() time.Time {
	return time.Now().In(MSK)
}

// Today returns the current date at midnight in MSK
func Today() time.Time {
	return StartOfDay(Now())
}

// ToMSK converts any time to MSK
func ToMSK(t time.Time) time.Time {
	return t.In(MSK)
}

// ParseDate parses a YYYY-MM-DD date string at midnight MSK
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, MSK)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) in MSK for the given time
func StartOfDay(t time.Time) time.Time {
	msk := t.In(MSK)
	return time.Date(msk.Year(), msk.Month(), msk.Day(), 0, 0, 0, 0, MSK)
}

// StartOfMonth returns the first day of t's month at midnight MSK
func StartOfMonth(t time.Time) time.Time {
	msk := t.In(MSK)
	return time.Date(msk.Year(), msk.Month(), 1, 0, 0, 0, 0, MSK)
}

// EndOfMonth returns the last day of t's month at midnight MSK
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02.01.2006"
)
