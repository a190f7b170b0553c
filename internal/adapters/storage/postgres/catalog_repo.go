package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dairy-admin/internal/domain/catalog"
)

type ProductsRepo struct {
	db *sql.DB
}

func NewProductsRepo(db *sql.DB) *ProductsRepo {
	return &ProductsRepo{db: db}
}

func (r *ProductsRepo) Create(ctx context.Context, p catalog.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, category, unit, price, stock,
			is_special, advance_bookable, is_active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.Name,
		p.Category,
		p.Unit,
		p.Price,
		p.Stock,
		p.IsSpecial,
		p.AdvanceBookable,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProductsRepo) Update(ctx context.Context, p catalog.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET
			name = $2,
			category = $3,
			unit = $4,
			price = $5,
			stock = $6,
			is_special = $7,
			advance_bookable = $8,
			is_active = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Category,
		p.Unit,
		p.Price,
		p.Stock,
		p.IsSpecial,
		p.AdvanceBookable,
		p.IsActive,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (catalog.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, unit, price, stock,
		       is_special, advance_bookable, is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id)

	var p catalog.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Unit,
		&p.Price,
		&p.Stock,
		&p.IsSpecial,
		&p.AdvanceBookable,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *ProductsRepo) List(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error) {
	q := `
		SELECT id, name, category, unit, price, stock,
		       is_special, advance_bookable, is_active, created_at, updated_at
		FROM products
		WHERE 1=1`
	args := make([]any, 0, 2)

	if f.OnlyActive {
		q += ` AND is_active = true`
	}
	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Product, 0)
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.Unit,
			&p.Price,
			&p.Stock,
			&p.IsSpecial,
			&p.AdvanceBookable,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type ReservationsRepo struct {
	db *sql.DB
}

func NewReservationsRepo(db *sql.DB) *ReservationsRepo {
	return &ReservationsRepo{db: db}
}

func (r *ReservationsRepo) Create(ctx context.Context, sr catalog.SpecialReservation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO special_reservations (
			id, customer_id, product_id, quantity, deposit, total,
			payment_method, payment_status, delivery_status, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		sr.ID,
		sr.CustomerID,
		sr.ProductID,
		sr.Quantity,
		sr.Deposit,
		sr.Total,
		sr.PaymentMethod,
		sr.PaymentStatus,
		sr.DeliveryStatus,
		sr.Notes,
		sr.CreatedAt,
	)
	return err
}

func (r *ReservationsRepo) Update(ctx context.Context, sr catalog.SpecialReservation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE special_reservations
		SET deposit = $2, payment_status = $3, delivery_status = $4, notes = $5
		WHERE id = $1
	`,
		sr.ID,
		sr.Deposit,
		sr.PaymentStatus,
		sr.DeliveryStatus,
		sr.Notes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ReservationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM special_reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ReservationsRepo) GetByID(ctx context.Context, id string) (catalog.SpecialReservation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, product_id, quantity, deposit, total,
		       payment_method, payment_status, delivery_status, notes, created_at
		FROM special_reservations
		WHERE id = $1
	`, id)

	sr, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.SpecialReservation{}, catalog.ErrNotFound
		}
		return catalog.SpecialReservation{}, err
	}
	return sr, nil
}

func (r *ReservationsRepo) List(ctx context.Context) ([]catalog.SpecialReservation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, product_id, quantity, deposit, total,
		       payment_method, payment_status, delivery_status, notes, created_at
		FROM special_reservations
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.SpecialReservation, 0)
	for rows.Next() {
		sr, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func scanReservation(row rowScanner) (catalog.SpecialReservation, error) {
	var sr catalog.SpecialReservation
	if err := row.Scan(
		&sr.ID,
		&sr.CustomerID,
		&sr.ProductID,
		&sr.Quantity,
		&sr.Deposit,
		&sr.Total,
		&sr.PaymentMethod,
		&sr.PaymentStatus,
		&sr.DeliveryStatus,
		&sr.Notes,
		&sr.CreatedAt,
	); err != nil {
		return catalog.SpecialReservation{}, err
	}
	return sr, nil
}
