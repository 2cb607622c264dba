package billing

import "math"

// Position is the settlement state between the company and a client for
// a set of charges. At most one of ClientOwes/CompanyOwes is non-zero.
type Position struct {
	AmountPerWeek float64 `json:"amount_per_week"`
	WeeksPaid     float64 `json:"weeks_paid"`
	DebtWeeks     int     `json:"debt_weeks"`
	ClientOwes    float64 `json:"client_owes"`
	CompanyOwes   float64 `json:"company_owes"`
}

// ComputePosition compares weeks rendered against weeks covered by
// payments. The week difference is rounded to whole weeks first and the
// money amount derived from the rounded count; small partial-week noise
// therefore never shows up as debt.
func ComputePosition(totalCharged, totalPaid float64, weeksInContract, weeksRendered int) Position {
	var p Position
	if weeksInContract <= 0 || totalCharged <= 0 {
		return p
	}
	p.AmountPerWeek = totalCharged / float64(weeksInContract)
	p.WeeksPaid = totalPaid / p.AmountPerWeek

	rendered := float64(weeksRendered)
	if rendered > p.WeeksPaid {
		p.DebtWeeks = int(math.Round(rendered - p.WeeksPaid))
		p.ClientOwes = float64(p.DebtWeeks) * p.AmountPerWeek
	} else if p.WeeksPaid > rendered {
		p.DebtWeeks = int(math.Round(p.WeeksPaid - rendered))
		p.CompanyOwes = float64(p.DebtWeeks) * p.AmountPerWeek
	}
	return p
}
