package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"passport-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildClientsCSV(t *testing.T) {
	first := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	rows := []*models.ClientSummary{
		{
			Client:       models.Client{ID: 1, Name: `Клиент; "Тест"`, Manager: &models.EmployeeRef{ID: 7, Name: "Иванова А."}},
			TotalCharged: 12000,
			TotalPaid:    7500.5,
			FirstStart:   &first,
			LastEnd:      &last,
		},
		{
			Client: models.Client{ID: 2, Name: "ООО Ромашка"},
		},
	}

	data := BuildClientsCSV(rows)

	require.True(t, bytes.HasPrefix(data, []byte("\uFEFF")), "export must start with a UTF-8 BOM")

	r := csv.NewReader(bytes.NewReader(data[3:]))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Название", "Начислено", "Оплачено", "Начало", "Завершение", "Менеджер"}, records[0])
	assert.Equal(t, []string{`Клиент; "Тест"`, "12000.00", "7500.50", "2024-01-10", "2024-03-15", "Иванова А."}, records[1])
	assert.Equal(t, []string{"ООО Ромашка", "0.00", "0.00", "", "", ""}, records[2])
}

func TestClientsCSVFilename(t *testing.T) {
	name := ClientsCSVFilename()
	assert.True(t, strings.HasPrefix(name, "клиенты_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))

	datePart := strings.TrimSuffix(strings.TrimPrefix(name, "клиенты_"), ".csv")
	_, err := time.Parse("2006-01-02", datePart)
	assert.NoError(t, err)
}

func TestSortPositions(t *testing.T) {
	rows := []DebtPosition{
		{ClientName: "a", Amount: 100},
		{ClientName: "b", Amount: 900},
		{ClientName: "c", Amount: 400},
	}
	sortPositions(rows)

	assert.Equal(t, "b", rows[0].ClientName)
	assert.Equal(t, "c", rows[1].ClientName)
	assert.Equal(t, "a", rows[2].ClientName)
}
