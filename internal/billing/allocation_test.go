package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport-backend/internal/models"
)

func charge(clientID int, amount float64, start, end time.Time) *models.Charge {
	return &models.Charge{
		ClientID:    clientID,
		ServiceName: "Сопровождение",
		Amount:      amount,
		StartDate:   &start,
		EndDate:     &end,
		CreatedAt:   start,
	}
}

func TestAllocateMultiWeek(t *testing.T) {
	// Four-week January contract: recognition starts one week after the
	// start week and runs through the end week.
	terms := TermsFromCharge(charge(1, 12000, date(2024, 1, 1), date(2024, 1, 29)))
	alloc := Allocate(terms, date(2024, 6, 1))

	require.Equal(t, []string{"2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}, alloc.WeekKeys)
	assert.Equal(t, 4, alloc.WeeksInContract)
	for _, key := range alloc.WeekKeys {
		assert.InDelta(t, 3000, alloc.Amounts[key], 0.001)
	}
}

func TestAllocateConservesAmount(t *testing.T) {
	amounts := []float64{7000, 12000, 9999.99, 35000}
	for _, amount := range amounts {
		terms := TermsFromCharge(charge(1, amount, date(2024, 2, 1), date(2024, 5, 17)))
		alloc := Allocate(terms, date(2024, 6, 1))
		var sum float64
		for _, v := range alloc.Amounts {
			sum += v
		}
		assert.InDelta(t, amount, sum, 0.0001, "allocation must conserve %v", amount)
	}
}

func TestAllocateShortContract(t *testing.T) {
	// Mon-Fri contract inside one week never reaches its own recognition
	// week, so the whole amount lands on the end week.
	terms := TermsFromCharge(charge(1, 7000, date(2024, 1, 1), date(2024, 1, 5)))
	alloc := Allocate(terms, date(2024, 6, 1))

	require.Equal(t, []string{"2024-01-01"}, alloc.WeekKeys)
	assert.InDelta(t, 7000, alloc.Amounts["2024-01-01"], 0.001)
	assert.Equal(t, 1, alloc.WeeksInContract)
	assert.Equal(t, 1, alloc.WeeksRendered)
	assert.InDelta(t, 7000, alloc.RenderedAmount, 0.001)
}

func TestAllocateRenderedWeeks(t *testing.T) {
	terms := TermsFromCharge(charge(1, 12000, date(2024, 1, 1), date(2024, 1, 29)))

	tests := []struct {
		name     string
		today    time.Time
		rendered int
	}{
		{"before first recognition week", date(2024, 1, 3), 0},
		{"during first recognition week", date(2024, 1, 10), 1},
		{"sunday still counts the current week", date(2024, 1, 14), 1},
		{"after contract end", date(2024, 3, 1), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := Allocate(terms, tt.today)
			assert.Equal(t, tt.rendered, alloc.WeeksRendered)
			assert.InDelta(t, 3000*float64(tt.rendered), alloc.RenderedAmount, 0.001)
		})
	}
}

func TestAllocateFreezeExcludesWeeks(t *testing.T) {
	c := charge(1, 12000, date(2024, 1, 1), date(2024, 1, 29))
	freeze := date(2024, 1, 22)
	c.FreezeStart = &freeze
	alloc := Allocate(TermsFromCharge(c), date(2024, 6, 1))

	// Weeks of Jan 22 and Jan 29 fall on or after the freeze start
	assert.Equal(t, 2, alloc.WeeksRendered)
	assert.InDelta(t, 6000, alloc.RenderedAmount, 0.001)
}

func TestAllocateFreezeMidWeek(t *testing.T) {
	// The week containing the freeze date itself is still rendered when
	// its Monday precedes the freeze.
	c := charge(1, 12000, date(2024, 1, 1), date(2024, 1, 29))
	freeze := date(2024, 1, 24)
	c.FreezeStart = &freeze
	alloc := Allocate(TermsFromCharge(c), date(2024, 6, 1))

	assert.Equal(t, 3, alloc.WeeksRendered)
}

func TestAllocateZeroAmount(t *testing.T) {
	terms := TermsFromCharge(charge(1, 0, date(2024, 1, 1), date(2024, 1, 29)))
	alloc := Allocate(terms, date(2024, 6, 1))

	assert.Equal(t, 4, alloc.WeeksInContract)
	for _, v := range alloc.Amounts {
		assert.Zero(t, v)
	}
}

func TestTermsFallbacks(t *testing.T) {
	created := date(2024, 3, 6)
	c := &models.Charge{ClientID: 1, Amount: 100, CreatedAt: created}
	terms := TermsFromCharge(c)
	assert.Equal(t, created, terms.Start)
	assert.Equal(t, created, terms.End)

	start := date(2024, 3, 1)
	c.StartDate = &start
	terms = TermsFromCharge(c)
	assert.Equal(t, start, terms.Start)
	assert.Equal(t, start, terms.End, "end falls back to start before created_at")
}

func TestDistributePaid(t *testing.T) {
	keys := []string{"2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}
	charged := map[string]float64{
		"2024-01-08": 3000, "2024-01-15": 3000, "2024-01-22": 3000, "2024-01-29": 3000,
	}

	t.Run("partial payment fills oldest weeks first", func(t *testing.T) {
		paid := DistributePaid(keys, charged, 7500)
		assert.InDelta(t, 3000, paid["2024-01-08"], 0.001)
		assert.InDelta(t, 3000, paid["2024-01-15"], 0.001)
		assert.InDelta(t, 1500, paid["2024-01-22"], 0.001)
		assert.Zero(t, paid["2024-01-29"])
	})

	t.Run("overpayment caps at the charged amounts", func(t *testing.T) {
		paid := DistributePaid(keys, charged, 20000)
		for _, k := range keys {
			assert.InDelta(t, 3000, paid[k], 0.001)
		}
	})

	t.Run("nothing paid", func(t *testing.T) {
		paid := DistributePaid(keys, charged, 0)
		for _, k := range keys {
			assert.Zero(t, paid[k])
		}
	})
}
