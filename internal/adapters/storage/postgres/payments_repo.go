package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dairy-admin/internal/domain/payments"
)

type PaymentsRepo struct {
	db *sql.DB
}

func NewPaymentsRepo(db *sql.DB) *PaymentsRepo {
	return &PaymentsRepo{db: db}
}

func (r *PaymentsRepo) Create(ctx context.Context, p payments.Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (
			id, customer_id, amount, bill_month, transaction_id, screenshot,
			status, rejection_reason, created_at, decided_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID,
		p.CustomerID,
		p.Amount,
		p.BillMonth,
		p.TransactionID,
		p.Screenshot,
		p.Status,
		p.RejectionReason,
		p.CreatedAt,
		timeToNull(p.DecidedAt),
	)
	return err
}

func (r *PaymentsRepo) Update(ctx context.Context, p payments.Payment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET
			status = $2,
			rejection_reason = $3,
			decided_at = $4
		WHERE id = $1
	`,
		p.ID,
		p.Status,
		p.RejectionReason,
		timeToNull(p.DecidedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return payments.ErrNotFound
	}
	return nil
}

func (r *PaymentsRepo) GetByID(ctx context.Context, id string) (payments.Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, amount, bill_month, transaction_id, screenshot,
		       status, rejection_reason, created_at, decided_at
		FROM payments
		WHERE id = $1
	`, id)

	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payments.Payment{}, payments.ErrNotFound
		}
		return payments.Payment{}, err
	}
	return p, nil
}

func (r *PaymentsRepo) ListByStatus(ctx context.Context, st payments.Status) ([]payments.Payment, error) {
	q := `
		SELECT id, customer_id, amount, bill_month, transaction_id, screenshot,
		       status, rejection_reason, created_at, decided_at
		FROM payments`
	args := []any{}
	if st != "" {
		q += ` WHERE status = $1`
		args = append(args, st)
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]payments.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(row rowScanner) (payments.Payment, error) {
	var p payments.Payment
	var decided sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.CustomerID,
		&p.Amount,
		&p.BillMonth,
		&p.TransactionID,
		&p.Screenshot,
		&p.Status,
		&p.RejectionReason,
		&p.CreatedAt,
		&decided,
	); err != nil {
		return payments.Payment{}, err
	}
	if decided.Valid {
		t := decided.Time
		p.DecidedAt = &t
	}
	return p, nil
}

type BillsRepo struct {
	db *sql.DB
}

func NewBillsRepo(db *sql.DB) *BillsRepo {
	return &BillsRepo{db: db}
}

func (r *BillsRepo) GetByCustomerMonth(ctx context.Context, customerID, billMonth string) (payments.Bill, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, bill_month, amount, status, paid_at
		FROM bills
		WHERE customer_id = $1 AND bill_month = $2
	`, customerID, billMonth)

	var b payments.Bill
	var paid sql.NullTime
	if err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.BillMonth,
		&b.Amount,
		&b.Status,
		&paid,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payments.Bill{}, payments.ErrNotFound
		}
		return payments.Bill{}, err
	}
	if paid.Valid {
		t := paid.Time
		b.PaidAt = &t
	}
	return b, nil
}

func (r *BillsRepo) Update(ctx context.Context, b payments.Bill) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bills
		SET status = $2, paid_at = $3
		WHERE id = $1
	`,
		b.ID,
		b.Status,
		timeToNull(b.PaidAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return payments.ErrNotFound
	}
	return nil
}

// SettingsRepo: fila única (id fijo), upsert en Put.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context) (payments.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT upi_id, payee_name, instructions, updated_at
		FROM payment_settings
		WHERE id = 1
	`)

	var s payments.Settings
	if err := row.Scan(&s.UPIID, &s.PayeeName, &s.Instructions, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payments.Settings{}, payments.ErrNotFound
		}
		return payments.Settings{}, err
	}
	return s, nil
}

func (r *SettingsRepo) Put(ctx context.Context, s payments.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_settings (id, upi_id, payee_name, instructions, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET upi_id = $1, payee_name = $2, instructions = $3, updated_at = $4
	`,
		s.UPIID,
		s.PayeeName,
		s.Instructions,
		s.UpdatedAt,
	)
	return err
}

func timeToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
