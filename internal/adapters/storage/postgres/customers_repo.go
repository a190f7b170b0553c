package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dairy-admin/internal/domain/customers"
)

type CustomersRepo struct {
	db *sql.DB
}

func NewCustomersRepo(db *sql.DB) *CustomersRepo {
	return &CustomersRepo{db: db}
}

func (r *CustomersRepo) Create(ctx context.Context, c customers.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (
			id, name, phone, address, area, is_active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.Name,
		c.Phone,
		c.Address,
		c.Area,
		c.IsActive,
		c.CreatedAt,
	)
	return err
}

func (r *CustomersRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address, area, is_active, created_at
		FROM customers
		WHERE id = $1
	`, id)

	var c customers.Customer
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Address,
		&c.Area,
		&c.IsActive,
		&c.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customers.Customer{}, customers.ErrNotFound
		}
		return customers.Customer{}, err
	}
	return c, nil
}

func (r *CustomersRepo) List(ctx context.Context) ([]customers.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, address, area, is_active, created_at
		FROM customers
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]customers.Customer, 0)
	for rows.Next() {
		var c customers.Customer
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Phone,
			&c.Address,
			&c.Area,
			&c.IsActive,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
