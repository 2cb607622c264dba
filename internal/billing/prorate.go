package billing

import (
	"math"
	"time"

	"passport-backend/internal/models"
)

// ProRataCancel splits a charge into earned and unearned parts as of the
// cancellation date, counting both boundary days. The unearned part is
// what the accounting routine reverses off deferred income (Дт 98 Кт 62).
func ProRataCancel(amount float64, start, end, cancelDate time.Time) models.CancelPreview {
	totalDays := int(math.Round(end.Sub(start).Hours()/24)) + 1
	if totalDays < 1 {
		totalDays = 1
	}
	earnedDays := int(math.Round(cancelDate.Sub(start).Hours()/24)) + 1
	if earnedDays < 0 {
		earnedDays = 0
	}
	if earnedDays > totalDays {
		earnedDays = totalDays
	}
	earned := math.Round(amount*float64(earnedDays)/float64(totalDays)*100) / 100
	return models.CancelPreview{
		TotalDays:    totalDays,
		EarnedDays:   earnedDays,
		EarnedAmount: earned,
		Unearned:     amount - earned,
	}
}
