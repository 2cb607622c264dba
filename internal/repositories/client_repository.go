package repositories

import (
	"context"

	"passport-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO clients(name, legal_name, manager_id)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		c.Name, c.LegalName, c.ManagerID,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *ClientRepository) Get(ctx context.Context, id int) (*models.Client, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT c.id, c.name, c.legal_name, c.manager_id, c.created_at, e.id, e.name
         FROM clients c
         LEFT JOIN employees e ON e.id = c.manager_id
         WHERE c.id=$1`, id)

	var client models.Client
	var managerID, managerRefID *int
	var managerName *string
	err := row.Scan(&client.ID, &client.Name, &client.LegalName, &managerID,
		&client.CreatedAt, &managerRefID, &managerName)
	if err != nil {
		return nil, err
	}
	client.ManagerID = managerID
	if managerRefID != nil && managerName != nil {
		client.Manager = &models.EmployeeRef{ID: *managerRefID, Name: *managerName}
	}
	return &client, nil
}

func (r *ClientRepository) List(ctx context.Context, search string) ([]*models.Client, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.name, c.legal_name, c.manager_id, c.created_at, e.id, e.name
         FROM clients c
         LEFT JOIN employees e ON e.id = c.manager_id
         WHERE $1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.legal_name ILIKE '%' || $1 || '%'
         ORDER BY c.name`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var client models.Client
		var managerRefID *int
		var managerName *string
		err := rows.Scan(&client.ID, &client.Name, &client.LegalName, &client.ManagerID,
			&client.CreatedAt, &managerRefID, &managerName)
		if err != nil {
			return nil, err
		}
		if managerRefID != nil && managerName != nil {
			client.Manager = &models.EmployeeRef{ID: *managerRefID, Name: *managerName}
		}
		clients = append(clients, &client)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clients SET name=$1, legal_name=$2, manager_id=$3
         WHERE id=$4`,
		c.Name, c.LegalName, c.ManagerID, c.ID)
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	return err
}
