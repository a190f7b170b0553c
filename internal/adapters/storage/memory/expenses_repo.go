package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dairy-admin/internal/domain/expenses"
)

type expenseRepo struct {
	mu   sync.RWMutex
	recs []expenses.Expense
}

func NewExpenseRepo() expenses.Repository {
	return &expenseRepo{}
}

func (r *expenseRepo) Create(ctx context.Context, e expenses.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("expense id required")
	}
	r.recs = append(r.recs, e)
	return nil
}

func (r *expenseRepo) List(ctx context.Context, f expenses.Filter) ([]expenses.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]expenses.Expense, 0)
	for _, e := range r.recs {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.AnimalID != "" && e.AnimalID != f.AnimalID {
			continue
		}
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
