package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dairy-admin/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, name, species, status,
	birth_date, entry_date, source, health_notes,
	pregnancy_status, last_insemination_date, expected_calving_date, dry_start_date,
	current_daily_milk, total_milk, total_calvings,
	created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Status,
		dateToNull(a.BirthDate),
		dateToNull(a.EntryDate),
		a.Source,
		a.HealthNotes,
		a.PregnancyStatus,
		dateToNull(a.LastInseminationDate),
		dateToNull(a.ExpectedCalvingDate),
		dateToNull(a.DryStartDate),
		a.CurrentDailyMilk,
		a.TotalMilk,
		a.TotalCalvings,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			status = $4,
			birth_date = $5,
			entry_date = $6,
			source = $7,
			health_notes = $8,
			pregnancy_status = $9,
			last_insemination_date = $10,
			expected_calving_date = $11,
			dry_start_date = $12,
			current_daily_milk = $13,
			total_milk = $14,
			total_calvings = $15,
			updated_at = $16
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Species,
		a.Status,
		dateToNull(a.BirthDate),
		dateToNull(a.EntryDate),
		a.Source,
		a.HealthNotes,
		a.PregnancyStatus,
		dateToNull(a.LastInseminationDate),
		dateToNull(a.ExpectedCalvingDate),
		dateToNull(a.DryStartDate),
		a.CurrentDailyMilk,
		a.TotalMilk,
		a.TotalCalvings,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	q := `SELECT ` + animalColumns + ` FROM animals WHERE 1=1`
	args := make([]any, 0, 2)

	if f.Species != "" {
		args = append(args, f.Species)
		q += ` AND species = $1`
	}
	if f.Status != "" {
		args = append(args, f.Status)
		if len(args) == 1 {
			q += ` AND status = $1`
		} else {
			q += ` AND status = $2`
		}
	}
	// orden de alta: los reportes aplanados dependen de este orden
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var birth, entry, lastIns, expCalving, dryStart sql.NullString

	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Status,
		&birth,
		&entry,
		&a.Source,
		&a.HealthNotes,
		&a.PregnancyStatus,
		&lastIns,
		&expCalving,
		&dryStart,
		&a.CurrentDailyMilk,
		&a.TotalMilk,
		&a.TotalCalvings,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	var err error
	if a.BirthDate, err = dateFromNull(birth); err != nil {
		return animals.Animal{}, err
	}
	if a.EntryDate, err = dateFromNull(entry); err != nil {
		return animals.Animal{}, err
	}
	if a.LastInseminationDate, err = dateFromNull(lastIns); err != nil {
		return animals.Animal{}, err
	}
	if a.ExpectedCalvingDate, err = dateFromNull(expCalving); err != nil {
		return animals.Animal{}, err
	}
	if a.DryStartDate, err = dateFromNull(dryStart); err != nil {
		return animals.Animal{}, err
	}
	return a, nil
}
