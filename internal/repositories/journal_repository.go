package repositories

import (
	"context"

	"passport-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// JournalRepository is read-only. Journal entries are posted by the
// database accounting routines; the service never writes them directly.
type JournalRepository struct {
	DB *pgxpool.Pool
}

func NewJournalRepository(db *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{DB: db}
}

const journalColumns = `id, entry_date, debit_account_code, credit_account_code, amount,
        client_id, service_name, document_type, document_id, document_extra, created_at`

func scanEntry(row interface{ Scan(...any) error }) (*models.JournalEntry, error) {
	var e models.JournalEntry
	err := row.Scan(&e.ID, &e.EntryDate, &e.DebitAccountCode, &e.CreditAccountCode, &e.Amount,
		&e.ClientID, &e.ServiceName, &e.DocumentType, &e.DocumentID, &e.DocumentExtra, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *JournalRepository) List(ctx context.Context, f models.JournalFilter) ([]*models.JournalEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+journalColumns+` FROM journal_entries
         WHERE ($1::int IS NULL OR client_id = $1)
           AND ($2 = '' OR debit_account_code = $2 OR credit_account_code = $2)
           AND ($3 = '' OR document_type = $3)
           AND ($4::date IS NULL OR entry_date >= $4)
           AND ($5::date IS NULL OR entry_date <= $5)
         ORDER BY entry_date, id`,
		f.ClientID, f.Account, f.DocumentType, f.From, f.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByAccount returns every entry ever posted that touches an account,
// ordered by date. Card builders need the full history for opening
// balances, so there is no date filter here.
func (r *JournalRepository) ListByAccount(ctx context.Context, account string) ([]*models.JournalEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+journalColumns+` FROM journal_entries
         WHERE debit_account_code = $1 OR credit_account_code = $1
         ORDER BY entry_date, id`, account)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListAll returns the complete journal ordered by date
func (r *JournalRepository) ListAll(ctx context.Context) ([]*models.JournalEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+journalColumns+` FROM journal_entries ORDER BY entry_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
