package billing

import (
	"sort"
	"time"

	"passport-backend/internal/models"
)

// MonthPoint is one month of the MRR series
type MonthPoint struct {
	Month string  `json:"month"`
	MRR   float64 `json:"mrr"`
}

// Metrics is the dashboard headline block
type Metrics struct {
	MRR           float64      `json:"mrr"`
	MRRGrowthPct  float64      `json:"mrr_growth_pct"`
	MRRSeries     []MonthPoint `json:"mrr_series"`
	ARPU          float64      `json:"arpu"`
	LTV           float64      `json:"ltv"`
	ActiveClients int          `json:"active_clients"`
	EndedClients  int          `json:"ended_clients"`
	ChurnedCount  int          `json:"churned_count"`
	ChurnRatePct  float64      `json:"churn_rate_pct"`
	RetentionPct  float64      `json:"retention_pct"`
	TotalCharged  float64      `json:"total_charged"`
	TotalPaid     float64      `json:"total_paid"`
	Debt          float64      `json:"debt"`
}

// ChurnMonth is one month of the churn decomposition series
type ChurnMonth struct {
	Month        string  `json:"month"`
	NewClients   int     `json:"new_clients"`
	AtRisk       int     `json:"at_risk"`
	Churned      int     `json:"churned"`
	ChurnRatePct float64 `json:"churn_rate_pct"`
}

// WeekCount is one bar of the weekly active-clients series
type WeekCount struct {
	Week    string `json:"week"`
	Clients int    `json:"clients"`
}

const monthKey = "2006-01"

// chargeSpan is a charge's recognition window in week Mondays plus its
// monthly revenue contribution
type chargeSpan struct {
	clientID int
	first    time.Time
	last     time.Time
	perMonth float64
}

func spanOf(c *models.Charge) chargeSpan {
	terms := TermsFromCharge(c)
	first := NextWeek(WeekMonday(terms.Start))
	last := WeekMonday(terms.End)
	weeks := 1
	if first.After(last) {
		first = last
	} else {
		weeks = int(last.Sub(first).Hours()/(24*7)) + 1
	}
	return chargeSpan{
		clientID: c.ClientID,
		first:    first,
		last:     last,
		perMonth: terms.Amount / float64(weeks) * (52.0 / 12.0),
	}
}

// ComputeMetrics builds the dashboard headline block from all charges
// and payments as of today.
func ComputeMetrics(charges []*models.Charge, payments []*models.Payment, today time.Time) Metrics {
	day := truncateDay(today)
	var m Metrics

	spans := make([]chargeSpan, 0, len(charges))
	lastEnd := make(map[int]time.Time)
	clientsWithCharges := make(map[int]bool)
	active := make(map[int]bool)

	for _, c := range charges {
		terms := TermsFromCharge(c)
		spans = append(spans, spanOf(c))
		clientsWithCharges[c.ClientID] = true
		m.TotalCharged += c.Amount
		if !terms.End.Before(day) {
			active[c.ClientID] = true
		}
		if prev, ok := lastEnd[c.ClientID]; !ok || terms.End.After(prev) {
			lastEnd[c.ClientID] = terms.End
		}
	}
	for _, p := range payments {
		m.TotalPaid += p.Amount
	}
	m.Debt = m.TotalCharged - m.TotalPaid
	m.ActiveClients = len(active)

	// 12-month MRR series ending at the current month
	monthStart := StartOfMonthAt(day).AddDate(0, -11, 0)
	for i := 0; i < 12; i++ {
		ms := monthStart.AddDate(0, i, 0)
		me := ms.AddDate(0, 1, -1)
		var mrr float64
		for _, s := range spans {
			if !s.first.After(me) && !s.last.Before(ms) {
				mrr += s.perMonth
			}
		}
		m.MRRSeries = append(m.MRRSeries, MonthPoint{Month: ms.Format(monthKey), MRR: mrr})
	}
	m.MRR = m.MRRSeries[11].MRR
	if prev := m.MRRSeries[10].MRR; prev > 0 {
		m.MRRGrowthPct = (m.MRR - prev) / prev * 100
	}

	if m.ActiveClients > 0 {
		m.ARPU = m.MRR / float64(m.ActiveClients)
	}
	if len(clientsWithCharges) > 0 {
		m.LTV = m.TotalCharged / float64(len(clientsWithCharges))
	}

	// A client has churned when their latest contract ended and nothing
	// was started after it
	for clientID, end := range lastEnd {
		if !end.Before(day) {
			continue
		}
		m.EndedClients++
		if !hasChargeAfter(charges, clientID, end) {
			m.ChurnedCount++
		}
	}
	m.RetentionPct = 100
	if m.EndedClients > 0 {
		m.ChurnRatePct = float64(m.ChurnedCount) / float64(m.EndedClients) * 100
		m.RetentionPct = 100 - m.ChurnRatePct
	}
	return m
}

func hasChargeAfter(charges []*models.Charge, clientID int, after time.Time) bool {
	for _, c := range charges {
		if c.ClientID != clientID {
			continue
		}
		if TermsFromCharge(c).Start.After(after) {
			return true
		}
	}
	return false
}

// StartOfMonthAt returns the first day of t's month in t's location
func StartOfMonthAt(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ComputeChurnSeries decomposes the last 12 months into new, at-risk and
// churned clients per month.
func ComputeChurnSeries(charges []*models.Charge, today time.Time) []ChurnMonth {
	day := truncateDay(today)

	lastEnd := make(map[int]time.Time)
	firstWeek := make(map[int]time.Time)
	for _, c := range charges {
		terms := TermsFromCharge(c)
		s := spanOf(c)
		if prev, ok := lastEnd[c.ClientID]; !ok || terms.End.After(prev) {
			lastEnd[c.ClientID] = terms.End
		}
		if prev, ok := firstWeek[c.ClientID]; !ok || s.first.Before(prev) {
			firstWeek[c.ClientID] = s.first
		}
	}

	monthStart := StartOfMonthAt(day).AddDate(0, -11, 0)
	series := make([]ChurnMonth, 0, 12)
	for i := 0; i < 12; i++ {
		ms := monthStart.AddDate(0, i, 0)
		key := ms.Format(monthKey)
		point := ChurnMonth{Month: key}

		for _, week := range firstWeek {
			if week.Format(monthKey) == key {
				point.NewClients++
			}
		}
		for clientID, end := range lastEnd {
			if end.Format(monthKey) != key {
				continue
			}
			point.AtRisk++
			if end.Before(day) && !hasChargeAfter(charges, clientID, end) {
				point.Churned++
			}
		}
		if point.AtRisk > 0 {
			point.ChurnRatePct = float64(point.Churned) / float64(point.AtRisk) * 100
		}
		series = append(series, point)
	}
	return series
}

// ComputeWeeklyClients counts distinct serviced clients per recognition
// week, padded four weeks past the data on both sides so charts show the
// run-in and run-out.
func ComputeWeeklyClients(charges []*models.Charge, today time.Time) []WeekCount {
	byWeek := make(map[string]map[int]bool)
	mark := func(monday time.Time, clientID int) {
		key := WeekKey(monday)
		if byWeek[key] == nil {
			byWeek[key] = make(map[int]bool)
		}
		byWeek[key][clientID] = true
	}

	for _, c := range charges {
		s := spanOf(c)
		for cursor := s.first; !cursor.After(s.last); cursor = NextWeek(cursor) {
			mark(cursor, c.ClientID)
		}
	}
	if len(byWeek) == 0 {
		return nil
	}

	keys := make([]string, 0, len(byWeek))
	for k := range byWeek {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	loc := today.Location()
	earliest, _ := time.ParseInLocation("2006-01-02", keys[0], loc)
	latest, _ := time.ParseInLocation("2006-01-02", keys[len(keys)-1], loc)
	earliest = earliest.AddDate(0, 0, -4*7)
	latest = latest.AddDate(0, 0, 4*7)

	var series []WeekCount
	for cursor := WeekMonday(earliest); !cursor.After(latest); cursor = NextWeek(cursor) {
		key := WeekKey(cursor)
		series = append(series, WeekCount{Week: key, Clients: len(byWeek[key])})
	}
	return series
}
