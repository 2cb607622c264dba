package models

import "time"

type Client struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	LegalName *string      `json:"legal_name"`
	ManagerID *int         `json:"manager_id"`
	Manager   *EmployeeRef `json:"manager,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// EmployeeRef is the short form of an employee used in joins. Upstream
// data sources return the join as either an object or a one-element
// array; repositories always normalize it to this single optional value.
type EmployeeRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ClientSummary is a client list row with billing totals attached
type ClientSummary struct {
	Client
	TotalCharged float64    `json:"total_charged"`
	TotalPaid    float64    `json:"total_paid"`
	FirstStart   *time.Time `json:"first_start"`
	LastEnd      *time.Time `json:"last_end"`
}

// CreateClientRequest represents the request body for creating a client
type CreateClientRequest struct {
	Name      string  `json:"name"`
	LegalName *string `json:"legal_name"`
	ManagerID *int    `json:"manager_id"`
}

// UpdateClientRequest represents the request body for updating a client
type UpdateClientRequest struct {
	Name      string  `json:"name"`
	LegalName *string `json:"legal_name"`
	ManagerID *int    `json:"manager_id"`
}
