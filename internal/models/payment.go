package models

import "time"

type Payment struct {
	ID          int       `json:"id"`
	ClientID    int       `json:"client_id"`
	ChargeID    *int      `json:"charge_id"`
	ServiceID   *int      `json:"service_id"`
	ServiceName string    `json:"service_name"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Comment     *string   `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePaymentRequest represents the request body for recording a payment
type CreatePaymentRequest struct {
	ChargeID    int     `json:"charge_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Comment     *string `json:"comment"`
}

// UpdatePaymentRequest represents the request body for updating a payment
type UpdatePaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Comment     *string `json:"comment"`
}
