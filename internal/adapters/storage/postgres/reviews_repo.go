package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dairy-admin/internal/domain/reviews"
)

type ReviewsRepo struct {
	db *sql.DB
}

func NewReviewsRepo(db *sql.DB) *ReviewsRepo {
	return &ReviewsRepo{db: db}
}

func (r *ReviewsRepo) Create(ctx context.Context, rv reviews.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (
			id, customer_name, rating, text, location,
			status, is_featured, created_at, moderated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rv.ID,
		rv.CustomerName,
		rv.Rating,
		rv.Text,
		rv.Location,
		rv.Status,
		rv.IsFeatured,
		rv.CreatedAt,
		timeToNull(rv.ModeratedAt),
	)
	return err
}

func (r *ReviewsRepo) Update(ctx context.Context, rv reviews.Review) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reviews
		SET status = $2, is_featured = $3, moderated_at = $4
		WHERE id = $1
	`,
		rv.ID,
		rv.Status,
		rv.IsFeatured,
		timeToNull(rv.ModeratedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reviews.ErrNotFound
	}
	return nil
}

func (r *ReviewsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reviews.ErrNotFound
	}
	return nil
}

func (r *ReviewsRepo) GetByID(ctx context.Context, id string) (reviews.Review, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, rating, text, location,
		       status, is_featured, created_at, moderated_at
		FROM reviews
		WHERE id = $1
	`, id)

	rv, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reviews.Review{}, reviews.ErrNotFound
		}
		return reviews.Review{}, err
	}
	return rv, nil
}

func (r *ReviewsRepo) List(ctx context.Context) ([]reviews.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, rating, text, location,
		       status, is_featured, created_at, moderated_at
		FROM reviews
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reviews.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(row rowScanner) (reviews.Review, error) {
	var rv reviews.Review
	var moderated sql.NullTime
	if err := row.Scan(
		&rv.ID,
		&rv.CustomerName,
		&rv.Rating,
		&rv.Text,
		&rv.Location,
		&rv.Status,
		&rv.IsFeatured,
		&rv.CreatedAt,
		&moderated,
	); err != nil {
		return reviews.Review{}, err
	}
	if moderated.Valid {
		t := moderated.Time
		rv.ModeratedAt = &t
	}
	return rv, nil
}
