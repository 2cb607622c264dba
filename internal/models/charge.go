package models

import "time"

// Stored charge statuses. An empty status means the charge runs its
// natural course; the display status is derived from the dates.
const (
	ChargeStatusActive    = "active"
	ChargeStatusPaused    = "paused"
	ChargeStatusCancelled = "cancelled"
)

// Subscription types
const (
	SubscriptionPrimary = "primary"
	SubscriptionRenewal = "renewal"
	SubscriptionOneTime = "one-time"
)

type Charge struct {
	ID               int        `json:"id"`
	ClientID         int        `json:"client_id"`
	ServiceID        *int       `json:"service_id"`
	ServiceName      string     `json:"service_name"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Amount           float64    `json:"amount"`
	Comment          *string    `json:"comment"`
	SubscriptionType *string    `json:"subscription_type"`
	Status           *string    `json:"status"`
	FreezeStart      *time.Time `json:"freeze_start"`
	FreezeEnd        *time.Time `json:"freeze_end"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

// ChargeView is a charge with its derived display status attached
type ChargeView struct {
	Charge
	DisplayStatus string `json:"display_status"`
}

// CreateChargeRequest represents the request body for creating a charge.
// Dates come in as YYYY-MM-DD strings.
type CreateChargeRequest struct {
	ServiceID int     `json:"service_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount"`
	Comment   *string `json:"comment"`
}

// UpdateChargeRequest represents the request body for updating a charge
type UpdateChargeRequest struct {
	ServiceID int     `json:"service_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount"`
	Comment   *string `json:"comment"`
}

// RenewalDefaults is the prefill for a renewal charge of a service
type RenewalDefaults struct {
	ServiceID        int     `json:"service_id"`
	ServiceName      string  `json:"service_name"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	Amount           float64 `json:"amount"`
	SubscriptionType string  `json:"subscription_type"`
}

// CancelPreview shows the pro-rata split before a cancellation is posted
type CancelPreview struct {
	TotalDays    int     `json:"total_days"`
	EarnedDays   int     `json:"earned_days"`
	EarnedAmount float64 `json:"earned_amount"`
	Unearned     float64 `json:"unearned_amount"`
}
