package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport-backend/internal/models"
)

func payment(clientID int, amount float64, day time.Time) *models.Payment {
	return &models.Payment{ClientID: clientID, Amount: amount, PaymentDate: day}
}

func TestComputeMetricsTotalsAndDebt(t *testing.T) {
	today := date(2024, 2, 15)
	charges := []*models.Charge{
		charge(1, 12000, date(2024, 1, 1), date(2024, 3, 31)),
		charge(2, 8000, date(2023, 10, 1), date(2023, 12, 31)),
	}
	payments := []*models.Payment{
		payment(1, 5000, date(2024, 1, 20)),
		payment(2, 8000, date(2023, 11, 1)),
	}

	m := ComputeMetrics(charges, payments, today)
	assert.InDelta(t, 20000, m.TotalCharged, 0.001)
	assert.InDelta(t, 13000, m.TotalPaid, 0.001)
	assert.InDelta(t, 7000, m.Debt, 0.001)
	assert.Equal(t, 1, m.ActiveClients, "only the client with a running contract counts")
	assert.InDelta(t, 10000, m.LTV, 0.001, "total charged over clients with charges")
}

func TestComputeMetricsMRRMonthOverlap(t *testing.T) {
	today := date(2024, 2, 15)
	// Jan 1 – Jan 29: recognition weeks Jan 8..Jan 29, four weeks.
	// The charge is active in January but not in February.
	charges := []*models.Charge{charge(1, 12000, date(2024, 1, 1), date(2024, 1, 29))}

	m := ComputeMetrics(charges, nil, today)
	require.Len(t, m.MRRSeries, 12)

	perMonth := 12000.0 / 4 * (52.0 / 12.0)
	var jan, feb MonthPoint
	for _, p := range m.MRRSeries {
		switch p.Month {
		case "2024-01":
			jan = p
		case "2024-02":
			feb = p
		}
	}
	assert.InDelta(t, perMonth, jan.MRR, 0.001)
	assert.Zero(t, feb.MRR)
	assert.Zero(t, m.MRR, "current month has no active charges")
}

func TestComputeMetricsChurn(t *testing.T) {
	today := date(2024, 6, 1)
	ended := charge(1, 5000, date(2024, 1, 1), date(2024, 2, 29))
	renewedOnce := charge(2, 5000, date(2024, 1, 1), date(2024, 2, 29))
	renewal := charge(2, 5000, date(2024, 3, 1), date(2024, 3, 31))
	running := charge(3, 5000, date(2024, 5, 1), date(2024, 8, 31))

	m := ComputeMetrics([]*models.Charge{ended, renewedOnce, renewal, running}, nil, today)

	// Clients 1 and 2 have ended. The renewal moved client 2's latest
	// end forward, and nothing starts after that, so both churn.
	assert.Equal(t, 2, m.EndedClients)
	assert.Equal(t, 2, m.ChurnedCount)
	assert.InDelta(t, 100, m.ChurnRatePct, 0.001)
	assert.Zero(t, m.RetentionPct)
}

func TestComputeMetricsNoEndedClients(t *testing.T) {
	today := date(2024, 2, 1)
	m := ComputeMetrics([]*models.Charge{charge(1, 5000, date(2024, 1, 1), date(2024, 6, 30))}, nil, today)
	assert.Zero(t, m.ChurnRatePct)
	assert.InDelta(t, 100, m.RetentionPct, 0.001)
}

func TestComputeChurnSeries(t *testing.T) {
	today := date(2024, 6, 1)
	charges := []*models.Charge{
		charge(1, 5000, date(2024, 1, 1), date(2024, 2, 29)), // churns in February
		charge(2, 5000, date(2024, 1, 1), date(2024, 2, 29)),
		charge(2, 5000, date(2024, 3, 1), date(2024, 3, 31)), // renewal saves client 2
	}
	series := ComputeChurnSeries(charges, today)
	require.Len(t, series, 12)

	byMonth := make(map[string]ChurnMonth)
	for _, p := range series {
		byMonth[p.Month] = p
	}

	jan := byMonth["2024-01"]
	assert.Equal(t, 2, jan.NewClients, "both clients start servicing in January")

	feb := byMonth["2024-02"]
	assert.Equal(t, 1, feb.AtRisk, "only client 1's final contract ends in February")
	assert.Equal(t, 1, feb.Churned)
	assert.InDelta(t, 100, feb.ChurnRatePct, 0.001)

	mar := byMonth["2024-03"]
	assert.Equal(t, 1, mar.AtRisk)
	assert.Equal(t, 1, mar.Churned, "client 2's renewal itself ended in March with nothing after it")
}

func TestComputeWeeklyClients(t *testing.T) {
	today := date(2024, 2, 1)
	charges := []*models.Charge{
		charge(1, 12000, date(2024, 1, 1), date(2024, 1, 29)),
		charge(2, 6000, date(2024, 1, 8), date(2024, 1, 29)),
		charge(4, 500, date(2024, 1, 16), date(2024, 1, 18)), // short: lands on its end week
	}
	series := ComputeWeeklyClients(charges, today)
	require.NotEmpty(t, series)

	counts := make(map[string]int)
	for _, p := range series {
		counts[p.Week] = p.Clients
	}
	assert.Equal(t, 1, counts["2024-01-08"], "only the first charge recognizes this early")
	assert.Equal(t, 3, counts["2024-01-15"], "the short charge lands on its end week")
	assert.Equal(t, 2, counts["2024-01-22"])
	assert.Equal(t, 2, counts["2024-01-29"])

	// Padding extends four weeks past the data on both sides
	assert.Contains(t, counts, "2023-12-11")
	assert.Contains(t, counts, "2024-02-26")
	assert.Zero(t, counts["2023-12-11"])
}
