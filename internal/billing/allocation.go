package billing

import (
	"time"

	"passport-backend/internal/models"
)

// ChargeTerms is the effective period and amount of a charge after the
// date fallbacks are applied: start falls back to created_at, end falls
// back to start and then created_at.
type ChargeTerms struct {
	ClientID    int
	ServiceName string
	Amount      float64
	Start       time.Time
	End         time.Time
	FreezeStart *time.Time
}

// TermsFromCharge applies the fallback chain to a stored charge
func TermsFromCharge(c *models.Charge) ChargeTerms {
	start := c.CreatedAt
	if c.StartDate != nil {
		start = *c.StartDate
	}
	end := start
	if c.EndDate != nil {
		end = *c.EndDate
	}
	return ChargeTerms{
		ClientID:    c.ClientID,
		ServiceName: c.ServiceName,
		Amount:      c.Amount,
		Start:       truncateDay(start),
		End:         truncateDay(end),
		FreezeStart: c.FreezeStart,
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Allocation is the charge amount spread over service weeks. Revenue is
// recognized one week after the fact: the first bucket is the Monday of
// the week after the start week, the last is the end date's week. A
// contract too short to reach its own recognition week collapses into a
// single bucket on the end week.
type Allocation struct {
	WeekKeys        []string
	Amounts         map[string]float64
	WeeksInContract int
	WeeksRendered   int
	RenderedAmount  float64
}

// Allocate spreads a charge over its recognition weeks. A week counts as
// rendered when its Monday is no later than today's week Monday and the
// charge was not frozen before that Monday.
func Allocate(terms ChargeTerms, today time.Time) Allocation {
	currentMonday := WeekMonday(today)
	first := NextWeek(WeekMonday(terms.Start))
	last := WeekMonday(terms.End)

	alloc := Allocation{Amounts: make(map[string]float64)}

	rendered := func(monday time.Time) bool {
		if monday.After(currentMonday) {
			return false
		}
		if terms.FreezeStart != nil && !monday.Before(*terms.FreezeStart) {
			return false
		}
		return true
	}

	if first.After(last) {
		key := WeekKey(last)
		alloc.WeekKeys = []string{key}
		alloc.Amounts[key] = terms.Amount
		alloc.WeeksInContract = 1
		if rendered(last) {
			alloc.WeeksRendered = 1
			alloc.RenderedAmount = terms.Amount
		}
		return alloc
	}

	var mondays []time.Time
	for cursor := first; !cursor.After(last); cursor = NextWeek(cursor) {
		mondays = append(mondays, cursor)
	}

	perWeek := terms.Amount / float64(len(mondays))
	for _, monday := range mondays {
		key := WeekKey(monday)
		alloc.WeekKeys = append(alloc.WeekKeys, key)
		alloc.Amounts[key] = perWeek
		alloc.WeeksInContract++
		if rendered(monday) {
			alloc.WeeksRendered++
			alloc.RenderedAmount += perWeek
		}
	}
	return alloc
}

// DistributePaid spreads a paid total over charged weeks oldest-first:
// each week absorbs up to its charged amount until the total runs out.
func DistributePaid(weekKeys []string, charged map[string]float64, totalPaid float64) map[string]float64 {
	paid := make(map[string]float64, len(weekKeys))
	consumed := 0.0
	for _, key := range weekKeys {
		remaining := totalPaid - consumed
		if remaining < 0 {
			remaining = 0
		}
		p := charged[key]
		if p > remaining {
			p = remaining
		}
		paid[key] = p
		consumed += p
	}
	return paid
}
