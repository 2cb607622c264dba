package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2024, 1, 1), date(2024, 1, 1)},
		{"wednesday maps back to monday", date(2024, 1, 3), date(2024, 1, 1)},
		{"saturday maps back to monday", date(2024, 1, 6), date(2024, 1, 1)},
		{"sunday belongs to the preceding monday", date(2024, 1, 7), date(2024, 1, 1)},
		{"next monday starts a new week", date(2024, 1, 8), date(2024, 1, 8)},
		{"time of day is stripped", time.Date(2024, 1, 3, 17, 45, 12, 0, time.UTC), date(2024, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekMonday(tt.in))
		})
	}
}

func TestWeekMondayIdempotent(t *testing.T) {
	for d := 0; d < 21; d++ {
		day := date(2024, 3, 1).AddDate(0, 0, d)
		once := WeekMonday(day)
		assert.Equal(t, once, WeekMonday(once), "WeekMonday must be idempotent for %s", day)
	}
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, "2024-01-08", WeekKey(date(2024, 1, 8)))
}
