package milk

import (
	"context"

	"dairy-admin/internal/platform/dates"
)

type Filter struct {
	AnimalID string
	From     *dates.Date
	To       *dates.Date
}

type Repository interface {
	Create(ctx context.Context, r Record) error
	List(ctx context.Context, f Filter) ([]Record, error)
}
