package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePosition(t *testing.T) {
	tests := []struct {
		name            string
		charged, paid   float64
		weeks, rendered int
		clientOwes      float64
		companyOwes     float64
	}{
		{"client behind by one week", 12000, 6000, 4, 3, 3000, 0},
		{"client fully settled", 12000, 9000, 4, 3, 0, 0},
		{"client prepaid ahead", 12000, 12000, 4, 2, 0, 6000},
		{"nothing rendered nothing paid", 12000, 0, 4, 0, 0, 0},
		{"all rendered nothing paid", 12000, 0, 4, 4, 12000, 0},
		{"no contract weeks", 0, 5000, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePosition(tt.charged, tt.paid, tt.weeks, tt.rendered)
			assert.InDelta(t, tt.clientOwes, p.ClientOwes, 0.001)
			assert.InDelta(t, tt.companyOwes, p.CompanyOwes, 0.001)
		})
	}
}

func TestComputePositionMutuallyExclusive(t *testing.T) {
	// Whatever the inputs, the two sides of the position never show up
	// at the same time.
	for paid := 0.0; paid <= 15000; paid += 1250 {
		p := ComputePosition(12000, paid, 4, 2)
		assert.False(t, p.ClientOwes > 0 && p.CompanyOwes > 0,
			"both sides owed at paid=%v: %+v", paid, p)
	}
}

func TestComputePositionRoundsWeeksFirst(t *testing.T) {
	// Paid covers 2.5 weeks against 3 rendered: the half-week gap rounds
	// up to one whole week before it is priced, so the debt is one full
	// week, not half of one.
	p := ComputePosition(12000, 7500, 4, 3)
	assert.InDelta(t, 2.5, p.WeeksPaid, 0.001)
	assert.Equal(t, 1, p.DebtWeeks)
	assert.InDelta(t, 3000, p.ClientOwes, 0.001)

	// A sub-half-week gap rounds away entirely
	p = ComputePosition(12000, 8500, 4, 3)
	assert.Equal(t, 0, p.DebtWeeks)
	assert.Zero(t, p.ClientOwes)
}
