package models

import "time"

// Service types
const (
	ServiceTypeSubscription = "subscription"
	ServiceTypeOneTime      = "one-time"
)

type Service struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	BaseCost     float64   `json:"base_cost"`
	Type         string    `json:"type"`
	DurationDays *int      `json:"duration_days"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateServiceRequest represents the request body for creating a catalog service
type CreateServiceRequest struct {
	Name         string  `json:"name"`
	BaseCost     float64 `json:"base_cost"`
	Type         string  `json:"type"`
	DurationDays *int    `json:"duration_days"`
}

// UpdateServiceRequest represents the request body for updating a catalog service
type UpdateServiceRequest struct {
	Name         string  `json:"name"`
	BaseCost     float64 `json:"base_cost"`
	Type         string  `json:"type"`
	DurationDays *int    `json:"duration_days"`
}
