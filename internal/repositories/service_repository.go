package repositories

import (
	"context"

	"passport-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	DB *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO services(name, base_cost, type, duration_days)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		s.Name, s.BaseCost, s.Type, s.DurationDays,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *ServiceRepository) Get(ctx context.Context, id int) (*models.Service, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, base_cost, type, duration_days, created_at
         FROM services WHERE id=$1`, id)

	var service models.Service
	err := row.Scan(&service.ID, &service.Name, &service.BaseCost, &service.Type,
		&service.DurationDays, &service.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*models.Service, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, base_cost, type, duration_days, created_at
         FROM services ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		var service models.Service
		err := rows.Scan(&service.ID, &service.Name, &service.BaseCost, &service.Type,
			&service.DurationDays, &service.CreatedAt)
		if err != nil {
			return nil, err
		}
		services = append(services, &service)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, s *models.Service) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE services SET name=$1, base_cost=$2, type=$3, duration_days=$4
         WHERE id=$5`,
		s.Name, s.BaseCost, s.Type, s.DurationDays, s.ID)
	return err
}

func (r *ServiceRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	return err
}
