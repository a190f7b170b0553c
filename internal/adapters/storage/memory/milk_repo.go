package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dairy-admin/internal/domain/milk"
)

type milkRepo struct {
	mu   sync.RWMutex
	recs []milk.Record
}

func NewMilkRepo() milk.Repository {
	return &milkRepo{}
}

func (r *milkRepo) Create(ctx context.Context, rec milk.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("milk record id required")
	}
	r.recs = append(r.recs, rec)
	return nil
}

func (r *milkRepo) List(ctx context.Context, f milk.Filter) ([]milk.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]milk.Record, 0)
	for _, rec := range r.recs {
		if f.AnimalID != "" && rec.AnimalID != f.AnimalID {
			continue
		}
		if f.From != nil && rec.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && rec.Date.After(*f.To) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
