package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dairy-admin/internal/domain/milk"
)

type MilkRepo struct {
	db *sql.DB
}

func NewMilkRepo(db *sql.DB) *MilkRepo {
	return &MilkRepo{db: db}
}

func (r *MilkRepo) Create(ctx context.Context, rec milk.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO milk_records (
			id, date, animal_id,
			morning_liters, morning_fat, morning_snf,
			evening_liters, evening_fat, evening_snf,
			rate, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		rec.ID,
		rec.Date.String(),
		rec.AnimalID,
		rec.MorningLiters,
		rec.MorningFat,
		rec.MorningSNF,
		rec.EveningLiters,
		rec.EveningFat,
		rec.EveningSNF,
		rec.Rate,
		rec.Notes,
		rec.CreatedAt,
	)
	return err
}

func (r *MilkRepo) List(ctx context.Context, f milk.Filter) ([]milk.Record, error) {
	q := `
		SELECT
			id, date, animal_id,
			morning_liters, morning_fat, morning_snf,
			evening_liters, evening_fat, evening_snf,
			rate, notes, created_at
		FROM milk_records
		WHERE 1=1`
	args := make([]any, 0, 3)

	if f.AnimalID != "" {
		args = append(args, f.AnimalID)
		q += fmt.Sprintf(" AND animal_id = $%d", len(args))
	}
	// date es texto "YYYY-MM-DD": la comparación lexicográfica es cronológica
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

	out := make([]milk.Record, 0)
	for rows.Next() {
		var rec milk.Record
		var date string
		if err := rows.Scan(
			&rec.ID,
			&date,
			&rec.AnimalID,
			&rec.MorningLiters,
			&rec.MorningFat,
			&rec.MorningSNF,
			&rec.EveningLiters,
			&rec.EveningFat,
			&rec.EveningSNF,
			&rec.Rate,
			&rec.Notes,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if rec.Date, err = dateFromString(date); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
