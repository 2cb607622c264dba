package models

import "time"

type Employee struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	PositionID *int      `json:"position_id"`
	Position   *Position `json:"position,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Position struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateEmployeeRequest represents the request body for creating an employee
type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	PositionID *int   `json:"position_id"`
}

// UpdateEmployeeRequest represents the request body for updating an employee
type UpdateEmployeeRequest struct {
	Name       string `json:"name"`
	PositionID *int   `json:"position_id"`
}

// CreatePositionRequest represents the request body for creating a position
type CreatePositionRequest struct {
	Name string `json:"name"`
}
