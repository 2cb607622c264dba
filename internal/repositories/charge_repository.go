package repositories

import (
	"context"

	"passport-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChargeRepository struct {
	DB *pgxpool.Pool
}

func NewChargeRepository(db *pgxpool.Pool) *ChargeRepository {
	return &ChargeRepository{DB: db}
}

const chargeColumns = `id, client_id, service_id, service_name, start_date, end_date, amount,
        comment, subscription_type, status, freeze_start, freeze_end, created_at, updated_at`

func scanCharge(row interface{ Scan(...any) error }) (*models.Charge, error) {
	var c models.Charge
	err := row.Scan(&c.ID, &c.ClientID, &c.ServiceID, &c.ServiceName, &c.StartDate, &c.EndDate,
		&c.Amount, &c.Comment, &c.SubscriptionType, &c.Status, &c.FreezeStart, &c.FreezeEnd,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChargeRepository) Create(ctx context.Context, c *models.Charge) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO charges(client_id, service_id, service_name, start_date, end_date, amount, comment, subscription_type)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		c.ClientID, c.ServiceID, c.ServiceName, c.StartDate, c.EndDate, c.Amount, c.Comment, c.SubscriptionType,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *ChargeRepository) Get(ctx context.Context, id int) (*models.Charge, error) {
	return scanCharge(r.DB.QueryRow(ctx,
		`SELECT `+chargeColumns+` FROM charges WHERE id=$1`, id))
}

func (r *ChargeRepository) ListByClient(ctx context.Context, clientID int) ([]*models.Charge, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+chargeColumns+` FROM charges WHERE client_id=$1 ORDER BY start_date, id`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*models.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}

func (r *ChargeRepository) ListAll(ctx context.Context) ([]*models.Charge, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+chargeColumns+` FROM charges ORDER BY client_id, start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*models.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}

func (r *ChargeRepository) Update(ctx context.Context, c *models.Charge) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE charges SET service_id=$1, service_name=$2, start_date=$3, end_date=$4,
                amount=$5, comment=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		c.ServiceID, c.ServiceName, c.StartDate, c.EndDate, c.Amount, c.Comment, c.ID)
	return err
}

func (r *ChargeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM charges WHERE id=$1`, id)
	return err
}
