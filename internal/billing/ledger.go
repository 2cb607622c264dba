package billing

import (
	"sort"
	"time"

	"passport-backend/internal/models"
)

// Chart of accounts used by the journal
const (
	AccountReceivables    = "62" // active
	AccountBank           = "51" // active
	AccountDeferredIncome = "98" // passive
	AccountSales          = "90" // passive
)

// AccountName returns the Russian ledger name of an account code
func AccountName(code string) string {
	switch code {
	case AccountReceivables:
		return "Расчёты с покупателями"
	case AccountBank:
		return "Расчётные счета"
	case AccountDeferredIncome:
		return "Доходы будущих периодов"
	case AccountSales:
		return "Продажи"
	}
	return ""
}

// IsActiveAccount reports whether the account carries its balance on the
// debit side. Closing balances are dt−kt for active accounts and kt−dt
// for passive ones.
func IsActiveAccount(code string) bool {
	return code == AccountReceivables || code == AccountBank
}

// CardRow is one line of an account card: opening balance, period
// turnovers and the derived closing balance for one grouping key.
type CardRow struct {
	Key     string  `json:"key"`
	Opening float64 `json:"opening"`
	Charged float64 `json:"charged"`
	Paid    float64 `json:"paid"`
	Closing float64 `json:"closing"`
}

// AccountCard is a per-key card of one account over a period, with a
// grand-total row summed element-wise over the group rows.
type AccountCard struct {
	Account string    `json:"account"`
	Rows    []CardRow `json:"rows"`
	Total   CardRow   `json:"total"`
}

// BuildAccountCard reduces journal entries into an account card. Only
// entries touching the account participate. Debit-side turnover is
// reported as "charged", credit-side as "paid"; the opening balance nets
// everything dated before the period start.
func BuildAccountCard(entries []*models.JournalEntry, account string, keyOf func(*models.JournalEntry) string, from, to time.Time) AccountCard {
	rows := make(map[string]*CardRow)
	get := func(key string) *CardRow {
		if r, ok := rows[key]; ok {
			return r
		}
		r := &CardRow{Key: key}
		rows[key] = r
		return r
	}

	for _, e := range entries {
		debit := e.DebitAccountCode == account
		credit := e.CreditAccountCode == account
		if !debit && !credit {
			continue
		}
		r := get(keyOf(e))
		switch {
		case e.EntryDate.Before(from):
			if debit {
				r.Opening += e.Amount
			} else {
				r.Opening -= e.Amount
			}
		case !e.EntryDate.After(to):
			if debit {
				r.Charged += e.Amount
			}
			if credit {
				r.Paid += e.Amount
			}
		}
	}

	card := AccountCard{Account: account}
	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		r := rows[k]
		r.Closing = r.Opening + r.Charged - r.Paid
		card.Rows = append(card.Rows, *r)
		card.Total.Opening += r.Opening
		card.Total.Charged += r.Charged
		card.Total.Paid += r.Paid
		card.Total.Closing += r.Closing
	}
	card.Total.Key = "total"
	return card
}

// TurnoverLine is one account's turnovers and closing balance within a
// turnover sheet group
type TurnoverLine struct {
	Account string  `json:"account"`
	Name    string  `json:"name"`
	Debit   float64 `json:"debit"`
	Credit  float64 `json:"credit"`
	Closing float64 `json:"closing"`
}

// TurnoverGroup is the turnover sheet of one grouping key (service)
type TurnoverGroup struct {
	Key   string         `json:"key"`
	Lines []TurnoverLine `json:"lines"`
}

// TurnoverSheet is the оборотно-сальдовая ведомость over a period
type TurnoverSheet struct {
	Groups []TurnoverGroup `json:"groups"`
	Totals []TurnoverLine  `json:"totals"`
}

// BuildTurnoverSheet rolls journal entries up into per-group, per-account
// debit/credit turnovers for the period.
func BuildTurnoverSheet(entries []*models.JournalEntry, keyOf func(*models.JournalEntry) string, from, to time.Time) TurnoverSheet {
	type accSums struct{ dt, kt float64 }
	groups := make(map[string]map[string]*accSums)
	totals := make(map[string]*accSums)

	add := func(m map[string]*accSums, account string, dt, kt float64) {
		s, ok := m[account]
		if !ok {
			s = &accSums{}
			m[account] = s
		}
		s.dt += dt
		s.kt += kt
	}

	for _, e := range entries {
		if e.EntryDate.Before(from) || e.EntryDate.After(to) {
			continue
		}
		key := keyOf(e)
		if groups[key] == nil {
			groups[key] = make(map[string]*accSums)
		}
		add(groups[key], e.DebitAccountCode, e.Amount, 0)
		add(groups[key], e.CreditAccountCode, 0, e.Amount)
		add(totals, e.DebitAccountCode, e.Amount, 0)
		add(totals, e.CreditAccountCode, 0, e.Amount)
	}

	lines := func(m map[string]*accSums) []TurnoverLine {
		accounts := make([]string, 0, len(m))
		for a := range m {
			accounts = append(accounts, a)
		}
		sort.Strings(accounts)
		out := make([]TurnoverLine, 0, len(accounts))
		for _, a := range accounts {
			s := m[a]
			closing := s.kt - s.dt
			if IsActiveAccount(a) {
				closing = s.dt - s.kt
			}
			out = append(out, TurnoverLine{Account: a, Name: AccountName(a), Debit: s.dt, Credit: s.kt, Closing: closing})
		}
		return out
	}

	sheet := TurnoverSheet{Totals: lines(totals)}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sheet.Groups = append(sheet.Groups, TurnoverGroup{Key: k, Lines: lines(groups[k])})
	}
	return sheet
}
