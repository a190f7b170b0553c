package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dairy-admin/internal/domain/catalog"
)

type productRepo struct {
	mu    sync.RWMutex
	byID  map[string]catalog.Product
	order []string
}

func NewProductRepo() catalog.ProductRepository {
	return &productRepo{
		byID: make(map[string]catalog.Product),
	}
}

func (r *productRepo) Create(ctx context.Context, p catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("product id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("product already exists")
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *productRepo) Update(ctx context.Context, p catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return catalog.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (r *productRepo) List(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		if f.OnlyActive && !p.IsActive {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type reservationRepo struct {
	mu    sync.RWMutex
	byID  map[string]catalog.SpecialReservation
	order []string
}

func NewReservationRepo() catalog.ReservationRepository {
	return &reservationRepo{
		byID: make(map[string]catalog.SpecialReservation),
	}
}

func (r *reservationRepo) Create(ctx context.Context, sr catalog.SpecialReservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sr.ID) == "" {
		return errors.New("reservation id required")
	}
	if _, exists := r.byID[sr.ID]; exists {
		return errors.New("reservation already exists")
	}
	r.byID[sr.ID] = sr
	r.order = append(r.order, sr.ID)
	return nil
}

func (r *reservationRepo) Update(ctx context.Context, sr catalog.SpecialReservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[sr.ID]; !exists {
		return catalog.ErrNotFound
	}
	r.byID[sr.ID] = sr
	return nil
}

func (r *reservationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return catalog.ErrNotFound
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

func (r *reservationRepo) GetByID(ctx context.Context, id string) (catalog.SpecialReservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sr, ok := r.byID[id]
	if !ok {
		return catalog.SpecialReservation{}, catalog.ErrNotFound
	}
	return sr, nil
}

func (r *reservationRepo) List(ctx context.Context) ([]catalog.SpecialReservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.SpecialReservation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
