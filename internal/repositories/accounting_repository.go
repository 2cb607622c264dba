package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountingRepository calls the database accounting routines that move
// a charge through pause/resume/cancel and post the matching journal
// entries. The routines are owned by the database; this service only
// invokes them and surfaces their two error shapes: a failed call, or a
// result document carrying an "error" field.
type AccountingRepository struct {
	DB *pgxpool.Pool
}

func NewAccountingRepository(db *pgxpool.Pool) *AccountingRepository {
	return &AccountingRepository{DB: db}
}

func (r *AccountingRepository) PauseCharge(ctx context.Context, chargeID int, pauseDate time.Time) error {
	return r.call(ctx,
		`SELECT pause_charge_with_accounting($1, $2)`, chargeID, pauseDate)
}

func (r *AccountingRepository) ResumeCharge(ctx context.Context, chargeID int, resumeDate time.Time) error {
	return r.call(ctx,
		`SELECT resume_charge_with_accounting($1, $2)`, chargeID, resumeDate)
}

func (r *AccountingRepository) CancelCharge(ctx context.Context, chargeID int, cancelDate time.Time) error {
	return r.call(ctx,
		`SELECT cancel_charge_with_accounting($1, $2)`, chargeID, cancelDate)
}

func (r *AccountingRepository) call(ctx context.Context, query string, args ...any) error {
	var raw []byte
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return fmt.Errorf("accounting routine failed: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	var result struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		// Routines may return a bare scalar on success
		return nil
	}
	if result.Error != "" {
		return fmt.Errorf("accounting routine rejected the operation: %s", result.Error)
	}
	return nil
}
