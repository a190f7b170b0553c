package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dairy-admin/internal/domain/customers"
)

type customerRepo struct {
	mu    sync.RWMutex
	byID  map[string]customers.Customer
	order []string
}

func NewCustomerRepo() customers.Repository {
	return &customerRepo{
		byID: make(map[string]customers.Customer),
	}
}

func (r *customerRepo) Create(ctx context.Context, c customers.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("customer id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("customer already exists")
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return customers.Customer{}, customers.ErrNotFound
	}
	return c, nil
}

func (r *customerRepo) List(ctx context.Context) ([]customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customers.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
