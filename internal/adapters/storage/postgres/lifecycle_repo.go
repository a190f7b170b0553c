package postgres

import (
	"context"
	"database/sql"

	"dairy-admin/internal/domain/lifecycle"
)

// LifecycleRepo persiste los cuatro logs append-only. Los SELECT ordenan por
// created_at asc, id asc: mismo orden de inserción que ve el resto del sistema.
type LifecycleRepo struct {
	db *sql.DB
}

func NewLifecycleRepo(db *sql.DB) *LifecycleRepo {
	return &LifecycleRepo{db: db}
}

func (r *LifecycleRepo) AppendInsemination(ctx context.Context, rec lifecycle.InseminationRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO insemination_records (
			id, animal_id, date, semen_type, technician, cost, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date.String(),
		rec.SemenType,
		rec.Technician,
		rec.Cost,
		rec.Notes,
		rec.CreatedAt,
	)
	return err
}

func (r *LifecycleRepo) ListInseminations(ctx context.Context, animalID string) ([]lifecycle.InseminationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, date, semen_type, technician, cost, notes, created_at
		FROM insemination_records
		WHERE animal_id = $1
		ORDER BY created_at ASC, id ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lifecycle.InseminationRecord, 0)
	for rows.Next() {
		var rec lifecycle.InseminationRecord
		var date string
		if err := rows.Scan(
			&rec.ID,
			&rec.AnimalID,
			&date,
			&rec.SemenType,
			&rec.Technician,
			&rec.Cost,
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

func (r *LifecycleRepo) AppendCalving(ctx context.Context, rec lifecycle.CalvingRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calving_records (
			id, animal_id, date, calf_gender, calf_name, calf_status, calf_weight, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date.String(),
		rec.CalfGender,
		rec.CalfName,
		rec.CalfStatus,
		rec.CalfWeight,
		rec.Notes,
		rec.CreatedAt,
	)
	return err
}

func (r *LifecycleRepo) ListCalvings(ctx context.Context, animalID string) ([]lifecycle.CalvingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, date, calf_gender, calf_name, calf_status, calf_weight, notes, created_at
		FROM calving_records
		WHERE animal_id = $1
		ORDER BY created_at ASC, id ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lifecycle.CalvingRecord, 0)
	for rows.Next() {
		var rec lifecycle.CalvingRecord
		var date string
		if err := rows.Scan(
			&rec.ID,
			&rec.AnimalID,
			&date,
			&rec.CalfGender,
			&rec.CalfName,
			&rec.CalfStatus,
			&rec.CalfWeight,
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

func (r *LifecycleRepo) AppendDeworming(ctx context.Context, rec lifecycle.DewormingRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deworming_records (
			id, animal_id, date, medicine, dosage, cost, next_due, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date.String(),
		rec.Medicine,
		rec.Dosage,
		rec.Cost,
		dateToNull(rec.NextDue),
		rec.Notes,
		rec.CreatedAt,
	)
	return err
}

func (r *LifecycleRepo) ListDewormings(ctx context.Context, animalID string) ([]lifecycle.DewormingRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, date, medicine, dosage, cost, next_due, notes, created_at
		FROM deworming_records
		WHERE animal_id = $1
		ORDER BY created_at ASC, id ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lifecycle.DewormingRecord, 0)
	for rows.Next() {
		var rec lifecycle.DewormingRecord
		var date string
		var nextDue sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.AnimalID,
			&date,
			&rec.Medicine,
			&rec.Dosage,
			&rec.Cost,
			&nextDue,
			&rec.Notes,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if rec.Date, err = dateFromString(date); err != nil {
			return nil, err
		}
		if rec.NextDue, err = dateFromNull(nextDue); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *LifecycleRepo) AppendSickness(ctx context.Context, rec lifecycle.SicknessRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sickness_records (
			id, animal_id, date, condition, treatment, cost, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rec.ID,
		rec.AnimalID,
		rec.Date.String(),
		rec.Condition,
		rec.Treatment,
		rec.Cost,
		rec.Notes,
		rec.CreatedAt,
	)
	return err
}

func (r *LifecycleRepo) ListSicknesses(ctx context.Context, animalID string) ([]lifecycle.SicknessRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, date, condition, treatment, cost, notes, created_at
		FROM sickness_records
		WHERE animal_id = $1
		ORDER BY created_at ASC, id ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lifecycle.SicknessRecord, 0)
	for rows.Next() {
		var rec lifecycle.SicknessRecord
		var date string
		if err := rows.Scan(
			&rec.ID,
			&rec.AnimalID,
			&date,
			&rec.Condition,
			&rec.Treatment,
			&rec.Cost,
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
