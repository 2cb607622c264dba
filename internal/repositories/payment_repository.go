package repositories

import (
	"context"

	"passport-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, client_id, charge_id, service_id, service_name, amount, payment_date, comment, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.ClientID, &p.ChargeID, &p.ServiceID, &p.ServiceName,
		&p.Amount, &p.PaymentDate, &p.Comment, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO payments(client_id, charge_id, service_id, service_name, amount, payment_date, comment)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		p.ClientID, p.ChargeID, p.ServiceID, p.ServiceName, p.Amount, p.PaymentDate, p.Comment,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	return scanPayment(r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
}

func (r *PaymentRepository) ListByClient(ctx context.Context, clientID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE client_id=$1 ORDER BY payment_date, id`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY payment_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE payments SET amount=$1, payment_date=$2, comment=$3
         WHERE id=$4`,
		p.Amount, p.PaymentDate, p.Comment, p.ID)
	return err
}

func (r *PaymentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	return err
}
