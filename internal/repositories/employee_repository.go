package repositories

import (
	"context"

	"passport-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepository struct {
	DB *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO employees(name, position_id)
         VALUES($1, $2)
         RETURNING id, created_at`,
		e.Name, e.PositionID,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT e.id, e.name, e.position_id, e.created_at, p.id, p.name
         FROM employees e
         LEFT JOIN positions p ON p.id = e.position_id
         WHERE e.id=$1`, id)
	return scanEmployee(row)
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT e.id, e.name, e.position_id, e.created_at, p.id, p.name
         FROM employees e
         LEFT JOIN positions p ON p.id = e.position_id
         ORDER BY e.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func scanEmployee(row interface{ Scan(...any) error }) (*models.Employee, error) {
	var e models.Employee
	var posID *int
	var posName *string
	err := row.Scan(&e.ID, &e.Name, &e.PositionID, &e.CreatedAt, &posID, &posName)
	if err != nil {
		return nil, err
	}
	if posID != nil && posName != nil {
		e.Position = &models.Position{ID: *posID, Name: *posName}
	}
	return &e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE employees SET name=$1, position_id=$2 WHERE id=$3`,
		e.Name, e.PositionID, e.ID)
	return err
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	return err
}

func (r *EmployeeRepository) ListPositions(ctx context.Context) ([]*models.Position, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM positions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []*models.Position
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		positions = append(positions, &p)
	}
	return positions, rows.Err()
}

func (r *EmployeeRepository) CreatePosition(ctx context.Context, p *models.Position) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO positions(name) VALUES($1) RETURNING id`, p.Name,
	).Scan(&p.ID)
}
