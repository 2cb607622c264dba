package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"passport-backend/internal/models"
)

func TestDisplayStatus(t *testing.T) {
	today := date(2024, 2, 15)
	paused := models.ChargeStatusPaused
	cancelled := models.ChargeStatusCancelled

	tests := []struct {
		name   string
		charge *models.Charge
		want   string
	}{
		{"running contract", charge(1, 100, date(2024, 2, 1), date(2024, 3, 1)), StatusActive},
		{"future contract", charge(1, 100, date(2024, 3, 1), date(2024, 4, 1)), StatusUpcoming},
		{"finished contract", charge(1, 100, date(2024, 1, 1), date(2024, 1, 31)), StatusExpired},
		{"contract ending today still active", charge(1, 100, date(2024, 2, 1), date(2024, 2, 15)), StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayStatus(tt.charge, today))
		})
	}

	t.Run("stored status wins over dates", func(t *testing.T) {
		c := charge(1, 100, date(2024, 1, 1), date(2024, 1, 31))
		c.Status = &paused
		assert.Equal(t, StatusPaused, DisplayStatus(c, today))
		c.Status = &cancelled
		assert.Equal(t, StatusCancelled, DisplayStatus(c, today))
	})
}

func TestStatusRank(t *testing.T) {
	assert.Less(t, StatusRank(StatusUpcoming), StatusRank(StatusActive))
	assert.Less(t, StatusRank(StatusActive), StatusRank(StatusPaused))
	assert.Less(t, StatusRank(StatusPaused), StatusRank(StatusExpired))
	assert.Less(t, StatusRank(StatusExpired), StatusRank(StatusCancelled))
}

func TestProRataCancel(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 1, 31)

	t.Run("mid-contract split", func(t *testing.T) {
		p := ProRataCancel(3100, start, end, date(2024, 1, 10))
		assert.Equal(t, 31, p.TotalDays)
		assert.Equal(t, 10, p.EarnedDays)
		assert.InDelta(t, 1000, p.EarnedAmount, 0.001)
		assert.InDelta(t, 2100, p.Unearned, 0.001)
	})

	t.Run("cancel on the last day earns everything", func(t *testing.T) {
		p := ProRataCancel(3100, start, end, end)
		assert.Equal(t, 31, p.EarnedDays)
		assert.InDelta(t, 3100, p.EarnedAmount, 0.001)
		assert.Zero(t, p.Unearned)
	})

	t.Run("earned plus unearned always equals the amount", func(t *testing.T) {
		for d := 0; d < 31; d++ {
			p := ProRataCancel(9999.99, start, end, start.AddDate(0, 0, d))
			assert.InDelta(t, 9999.99, p.EarnedAmount+p.Unearned, 0.0001)
		}
	})

	t.Run("single-day contract", func(t *testing.T) {
		p := ProRataCancel(500, start, start, start)
		assert.Equal(t, 1, p.TotalDays)
		assert.InDelta(t, 500, p.EarnedAmount, 0.001)
	})
}
