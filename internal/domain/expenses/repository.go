package expenses

import (
	"context"

	"dairy-admin/internal/platform/dates"
)

// Filter acota List; zero value = ledger completo.
type Filter struct {
	Category Category
	AnimalID string
	From     *dates.Date
	To       *dates.Date
}

type Repository interface {
	Create(ctx context.Context, e Expense) error
	List(ctx context.Context, f Filter) ([]Expense, error)
}
