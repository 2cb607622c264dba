package services

import (
	"errors"
	"testing"
	"time"

	"passport-backend/internal/models"
	"passport-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mskDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timeutil.MSK)
}

func period(id int, service string, start, end time.Time) *models.Charge {
	return &models.Charge{ID: id, ServiceName: service, StartDate: &start, EndDate: &end, Amount: 1000}
}

func TestParseChargeDates(t *testing.T) {
	start, end, err := parseChargeDates("2024-01-01", "2024-02-01", 5000)
	require.NoError(t, err)
	assert.Equal(t, mskDate(2024, 1, 1), start)
	assert.Equal(t, mskDate(2024, 2, 1), end)

	cases := []struct {
		name       string
		start, end string
		amount     float64
	}{
		{"missing start", "", "2024-02-01", 5000},
		{"missing end", "2024-01-01", "", 5000},
		{"zero amount", "2024-01-01", "2024-02-01", 0},
		{"negative amount", "2024-01-01", "2024-02-01", -100},
		{"bad format", "01.01.2024", "2024-02-01", 5000},
		{"start after end", "2024-02-02", "2024-02-01", 5000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseChargeDates(tc.start, tc.end, tc.amount)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestCheckOverlap(t *testing.T) {
	existing := []*models.Charge{
		period(1, "Подписка", mskDate(2024, 1, 1), mskDate(2024, 1, 31)),
	}

	t.Run("intersecting period rejected", func(t *testing.T) {
		err := checkOverlap(existing, "Подписка", 0, mskDate(2024, 1, 15), mskDate(2024, 2, 15))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("touching boundary passes", func(t *testing.T) {
		// A renewal may start on the day the previous period ends.
		err := checkOverlap(existing, "Подписка", 0, mskDate(2024, 1, 31), mskDate(2024, 2, 29))
		assert.NoError(t, err)
	})

	t.Run("other service ignored", func(t *testing.T) {
		err := checkOverlap(existing, "Аудит", 0, mskDate(2024, 1, 15), mskDate(2024, 2, 15))
		assert.NoError(t, err)
	})

	t.Run("cancelled period ignored", func(t *testing.T) {
		cancelled := period(2, "Подписка", mskDate(2024, 1, 1), mskDate(2024, 1, 31))
		status := models.ChargeStatusCancelled
		cancelled.Status = &status
		err := checkOverlap([]*models.Charge{cancelled}, "Подписка", 0, mskDate(2024, 1, 15), mskDate(2024, 2, 15))
		assert.NoError(t, err)
	})

	t.Run("self excluded on update", func(t *testing.T) {
		err := checkOverlap(existing, "Подписка", 1, mskDate(2024, 1, 10), mskDate(2024, 2, 10))
		assert.NoError(t, err)
	})
}

func TestInferSubscriptionType(t *testing.T) {
	sub := &models.Service{ID: 1, Name: "Подписка", Type: models.ServiceTypeSubscription}
	oneTime := &models.Service{ID: 2, Name: "Аудит", Type: models.ServiceTypeOneTime}

	t.Run("one-time service", func(t *testing.T) {
		assert.Equal(t, models.SubscriptionOneTime, inferSubscriptionType(oneTime, nil))
	})

	t.Run("first charge is primary", func(t *testing.T) {
		assert.Equal(t, models.SubscriptionPrimary, inferSubscriptionType(sub, nil))
	})

	t.Run("repeat charge is renewal", func(t *testing.T) {
		existing := []*models.Charge{period(1, "Подписка", mskDate(2024, 1, 1), mskDate(2024, 1, 31))}
		assert.Equal(t, models.SubscriptionRenewal, inferSubscriptionType(sub, existing))
	})

	t.Run("cancelled history makes primary", func(t *testing.T) {
		cancelled := period(1, "Подписка", mskDate(2024, 1, 1), mskDate(2024, 1, 31))
		status := models.ChargeStatusCancelled
		cancelled.Status = &status
		assert.Equal(t, models.SubscriptionPrimary, inferSubscriptionType(sub, []*models.Charge{cancelled}))
	})
}

func TestValidateServiceInput(t *testing.T) {
	assert.NoError(t, validateServiceInput("Подписка", models.ServiceTypeSubscription, 12000))
	assert.Error(t, validateServiceInput("", models.ServiceTypeSubscription, 12000))
	assert.Error(t, validateServiceInput("Подписка", models.ServiceTypeSubscription, -1))
	assert.Error(t, validateServiceInput("Подписка", "weekly", 12000))
}
