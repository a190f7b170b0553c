package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dairy-admin/internal/domain/expenses"
)

type ExpensesRepo struct {
	db *sql.DB
}

func NewExpensesRepo(db *sql.DB) *ExpensesRepo {
	return &ExpensesRepo{db: db}
}

func (r *ExpensesRepo) Create(ctx context.Context, e expenses.Expense) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (
			id, date, category, amount, description, animal_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		e.ID,
		e.Date.String(),
		e.Category,
		e.Amount,
		e.Description,
		e.AnimalID,
		e.CreatedAt,
	)
	return err
}

func (r *ExpensesRepo) List(ctx context.Context, f expenses.Filter) ([]expenses.Expense, error) {
	q := `
		SELECT id, date, category, amount, description, animal_id, created_at
		FROM expenses
		WHERE 1=1`
	args := make([]any, 0, 4)

	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.AnimalID != "" {
		args = append(args, f.AnimalID)
		q += fmt.Sprintf(" AND animal_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, f.From.String())
		q += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, f.To.String())
		q += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]expenses.Expense, 0)
	for rows.Next() {
		var e expenses.Expense
		var date string
		if err := rows.Scan(
			&e.ID,
			&date,
			&e.Category,
			&e.Amount,
			&e.Description,
			&e.AnimalID,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		if e.Date, err = dateFromString(date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
