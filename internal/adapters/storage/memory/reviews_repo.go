package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dairy-admin/internal/domain/reviews"
)

type reviewRepo struct {
	mu    sync.RWMutex
	byID  map[string]reviews.Review
	order []string
}

func NewReviewRepo() reviews.Repository {
	return &reviewRepo{
		byID: make(map[string]reviews.Review),
	}
}

func (r *reviewRepo) Create(ctx context.Context, rv reviews.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rv.ID) == "" {
		return errors.New("review id required")
	}
	if _, exists := r.byID[rv.ID]; exists {
		return errors.New("review already exists")
	}
	r.byID[rv.ID] = rv
	r.order = append(r.order, rv.ID)
	return nil
}

func (r *reviewRepo) Update(ctx context.Context, rv reviews.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rv.ID]; !exists {
		return reviews.ErrNotFound
	}
	r.byID[rv.ID] = rv
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return reviews.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *reviewRepo) GetByID(ctx context.Context, id string) (reviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rv, ok := r.byID[id]
	if !ok {
		return reviews.Review{}, reviews.ErrNotFound
	}
	return rv, nil
}

func (r *reviewRepo) List(ctx context.Context) ([]reviews.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reviews.Review, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
