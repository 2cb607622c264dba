package billing

import (
	"time"

	"passport-backend/internal/models"
)

// Display statuses derived from a charge's stored status and dates
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// statusRank orders charges for display: running contracts first,
// finished ones last.
var statusRank = map[string]int{
	StatusUpcoming:  0,
	StatusActive:    1,
	StatusPaused:    2,
	StatusExpired:   3,
	StatusCancelled: 4,
}

// DisplayStatus classifies a charge. A stored paused/cancelled status
// wins over anything the dates would say.
func DisplayStatus(c *models.Charge, today time.Time) string {
	if c.Status != nil {
		switch *c.Status {
		case models.ChargeStatusPaused:
			return StatusPaused
		case models.ChargeStatusCancelled:
			return StatusCancelled
		}
	}
	terms := TermsFromCharge(c)
	day := truncateDay(today)
	if terms.End.Before(day) {
		return StatusExpired
	}
	if terms.Start.After(day) {
		return StatusUpcoming
	}
	return StatusActive
}

// StatusRank returns the sort rank of a display status
func StatusRank(status string) int {
	if r, ok := statusRank[status]; ok {
		return r
	}
	return len(statusRank)
}
