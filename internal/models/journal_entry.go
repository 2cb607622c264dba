package models

import "time"

// Journal document types. Entries are written by database accounting
// routines; this service only ever reads them.
const (
	DocumentCharge            = "charge"
	DocumentPayment           = "payment"
	DocumentWeeklyRecognition = "weekly_recognition"
	DocumentCancellation      = "cancellation"
	DocumentPauseReversal     = "pause_reversal"
	DocumentChargeResume      = "charge_resume"
)

type JournalEntry struct {
	ID                int        `json:"id"`
	EntryDate         time.Time  `json:"entry_date"`
	DebitAccountCode  string     `json:"debit_account_code"`
	CreditAccountCode string     `json:"credit_account_code"`
	Amount            float64    `json:"amount"`
	ClientID          *int       `json:"client_id"`
	ServiceName       *string    `json:"service_name"`
	DocumentType      string     `json:"document_type"`
	DocumentID        *int       `json:"document_id"`
	DocumentExtra     *string    `json:"document_extra"`
	CreatedAt         time.Time  `json:"created_at"`
}

// JournalFilter narrows a journal listing
type JournalFilter struct {
	ClientID     *int
	Account      string
	DocumentType string
	From         *time.Time
	To           *time.Time
}
