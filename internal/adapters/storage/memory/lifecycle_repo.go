package memory

import (
	"context"
	"sync"

	"dairy-admin/internal/domain/lifecycle"
)

// lifecycleRepo: cuatro logs append-only por animal, siempre en orden de
// inserción (slice por animal, nunca se reordena).
type lifecycleRepo struct {
	mu            sync.RWMutex
	inseminations map[string][]lifecycle.InseminationRecord
	calvings      map[string][]lifecycle.CalvingRecord
	dewormings    map[string][]lifecycle.DewormingRecord
	sicknesses    map[string][]lifecycle.SicknessRecord
}

func NewLifecycleRepo() lifecycle.Repository {
	return &lifecycleRepo{
		inseminations: make(map[string][]lifecycle.InseminationRecord),
		calvings:      make(map[string][]lifecycle.CalvingRecord),
		dewormings:    make(map[string][]lifecycle.DewormingRecord),
		sicknesses:    make(map[string][]lifecycle.SicknessRecord),
	}
}

func (r *lifecycleRepo) AppendInsemination(ctx context.Context, rec lifecycle.InseminationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inseminations[rec.AnimalID] = append(r.inseminations[rec.AnimalID], rec)
	return nil
}

func (r *lifecycleRepo) ListInseminations(ctx context.Context, animalID string) ([]lifecycle.InseminationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]lifecycle.InseminationRecord, len(r.inseminations[animalID]))
	copy(out, r.inseminations[animalID])
	return out, nil
}

func (r *lifecycleRepo) AppendCalving(ctx context.Context, rec lifecycle.CalvingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calvings[rec.AnimalID] = append(r.calvings[rec.AnimalID], rec)
	return nil
}

func (r *lifecycleRepo) ListCalvings(ctx context.Context, animalID string) ([]lifecycle.CalvingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]lifecycle.CalvingRecord, len(r.calvings[animalID]))
	copy(out, r.calvings[animalID])
	return out, nil
}

func (r *lifecycleRepo) AppendDeworming(ctx context.Context, rec lifecycle.DewormingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dewormings[rec.AnimalID] = append(r.dewormings[rec.AnimalID], rec)
	return nil
}

func (r *lifecycleRepo) ListDewormings(ctx context.Context, animalID string) ([]lifecycle.DewormingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]lifecycle.DewormingRecord, len(r.dewormings[animalID]))
	copy(out, r.dewormings[animalID])
	return out, nil
}

func (r *lifecycleRepo) AppendSickness(ctx context.Context, rec lifecycle.SicknessRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sicknesses[rec.AnimalID] = append(r.sicknesses[rec.AnimalID], rec)
	return nil
}

func (r *lifecycleRepo) ListSicknesses(ctx context.Context, animalID string) ([]lifecycle.SicknessRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]lifecycle.SicknessRecord, len(r.sicknesses[animalID]))
	copy(out, r.sicknesses[animalID])
	return out, nil
}
