package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport-backend/internal/models"
)

func entry(day time.Time, dt, kt string, amount float64, service string) *models.JournalEntry {
	return &models.JournalEntry{
		EntryDate:         day,
		DebitAccountCode:  dt,
		CreditAccountCode: kt,
		Amount:            amount,
		ServiceName:       &service,
	}
}

func byService(e *models.JournalEntry) string {
	if e.ServiceName == nil {
		return ""
	}
	return *e.ServiceName
}

func TestBuildAccountCard(t *testing.T) {
	entries := []*models.JournalEntry{
		// Before the period: one charge, one payment
		entry(date(2023, 12, 10), "62", "98", 5000, "Сопровождение"),
		entry(date(2023, 12, 20), "51", "62", 2000, "Сопровождение"),
		// In the period
		entry(date(2024, 1, 5), "62", "98", 3000, "Сопровождение"),
		entry(date(2024, 1, 12), "51", "62", 4000, "Сопровождение"),
		entry(date(2024, 1, 15), "62", "98", 1000, "Аудит"),
		// Not touching account 62 at all
		entry(date(2024, 1, 16), "98", "90", 750, "Сопровождение"),
		// After the period
		entry(date(2024, 2, 2), "62", "98", 9999, "Сопровождение"),
	}

	card := BuildAccountCard(entries, AccountReceivables, byService, date(2024, 1, 1), date(2024, 1, 31))
	require.Len(t, card.Rows, 2)

	audit := card.Rows[0]
	assert.Equal(t, "Аудит", audit.Key)
	assert.Zero(t, audit.Opening)
	assert.InDelta(t, 1000, audit.Charged, 0.001)
	assert.Zero(t, audit.Paid)
	assert.InDelta(t, 1000, audit.Closing, 0.001)

	maint := card.Rows[1]
	assert.Equal(t, "Сопровождение", maint.Key)
	assert.InDelta(t, 3000, maint.Opening, 0.001, "opening nets pre-period debit and credit")
	assert.InDelta(t, 3000, maint.Charged, 0.001)
	assert.InDelta(t, 4000, maint.Paid, 0.001)
	assert.InDelta(t, 2000, maint.Closing, 0.001)
}

func TestAccountCardClosingIdentity(t *testing.T) {
	entries := []*models.JournalEntry{
		entry(date(2023, 11, 1), "62", "98", 1234.56, "А"),
		entry(date(2024, 1, 3), "62", "98", 2000, "А"),
		entry(date(2024, 1, 9), "51", "62", 1500, "А"),
		entry(date(2024, 1, 20), "62", "98", 800, "Б"),
		entry(date(2024, 1, 25), "51", "62", 800, "Б"),
	}
	card := BuildAccountCard(entries, AccountReceivables, byService, date(2024, 1, 1), date(2024, 1, 31))

	for _, row := range card.Rows {
		assert.InDelta(t, row.Opening+row.Charged-row.Paid, row.Closing, 0.0001, "row %s", row.Key)
	}
	assert.InDelta(t, card.Total.Opening+card.Total.Charged-card.Total.Paid, card.Total.Closing, 0.0001)
}

func TestAccountCardGrandTotal(t *testing.T) {
	entries := []*models.JournalEntry{
		entry(date(2024, 1, 3), "62", "98", 2000, "А"),
		entry(date(2024, 1, 20), "62", "98", 800, "Б"),
		entry(date(2024, 1, 25), "51", "62", 500, "Б"),
	}
	card := BuildAccountCard(entries, AccountReceivables, byService, date(2024, 1, 1), date(2024, 1, 31))

	var opening, charged, paid, closing float64
	for _, row := range card.Rows {
		opening += row.Opening
		charged += row.Charged
		paid += row.Paid
		closing += row.Closing
	}
	assert.InDelta(t, opening, card.Total.Opening, 0.0001)
	assert.InDelta(t, charged, card.Total.Charged, 0.0001)
	assert.InDelta(t, paid, card.Total.Paid, 0.0001)
	assert.InDelta(t, closing, card.Total.Closing, 0.0001)
}

func TestBuildTurnoverSheetSigns(t *testing.T) {
	entries := []*models.JournalEntry{
		entry(date(2024, 1, 5), "62", "98", 3000, "Сопровождение"),  // charge
		entry(date(2024, 1, 8), "98", "90", 750, "Сопровождение"),   // weekly recognition
		entry(date(2024, 1, 12), "51", "62", 2000, "Сопровождение"), // payment
	}
	sheet := BuildTurnoverSheet(entries, byService, date(2024, 1, 1), date(2024, 1, 31))
	require.Len(t, sheet.Groups, 1)

	want := map[string]float64{
		"51": 2000,        // active: dt−kt
		"62": 3000 - 2000, // active: dt−kt
		"90": 750,         // passive: kt−dt
		"98": 3000 - 750,  // passive: kt−dt
	}
	for _, line := range sheet.Groups[0].Lines {
		assert.InDelta(t, want[line.Account], line.Closing, 0.001, "account %s", line.Account)
	}

	// Totals mirror the single group
	for _, line := range sheet.Totals {
		assert.InDelta(t, want[line.Account], line.Closing, 0.001, "total for account %s", line.Account)
	}
}

func TestAccountNames(t *testing.T) {
	assert.Equal(t, "Расчёты с покупателями", AccountName("62"))
	assert.Equal(t, "Доходы будущих периодов", AccountName("98"))
	assert.Equal(t, "Продажи", AccountName("90"))
	assert.Equal(t, "Расчётные счета", AccountName("51"))
	assert.True(t, IsActiveAccount("62"))
	assert.True(t, IsActiveAccount("51"))
	assert.False(t, IsActiveAccount("98"))
	assert.False(t, IsActiveAccount("90"))
}
