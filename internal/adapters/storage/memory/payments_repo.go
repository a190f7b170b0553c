package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dairy-admin/internal/domain/payments"
)

type paymentRepo struct {
	mu    sync.RWMutex
	byID  map[string]payments.Payment
	order []string
}

func NewPaymentRepo() payments.Repository {
	return &paymentRepo{
		byID: make(map[string]payments.Payment),
	}
}

func (r *paymentRepo) Create(ctx context.Context, p payments.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("payment id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("payment already exists")
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *paymentRepo) Update(ctx context.Context, p payments.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return payments.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id string) (payments.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return payments.Payment{}, payments.ErrNotFound
	}
	return p, nil
}

func (r *paymentRepo) ListByStatus(ctx context.Context, st payments.Status) ([]payments.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payments.Payment, 0)
	for _, id := range r.order {
		p := r.byID[id]
		if st != "" && p.Status != st {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// billRepo indexa por (customer, mes): es la única búsqueda que el core hace.
type billRepo struct {
	mu    sync.RWMutex
	bills map[string]payments.Bill // key: customerID + "|" + billMonth
}

func NewBillRepo() *BillStore {
	return &BillStore{repo: &billRepo{bills: make(map[string]payments.Bill)}}
}

// BillStore expone el repo más un Seed para cargar facturas en dev/tests.
type BillStore struct {
	repo *billRepo
}

func (s *BillStore) GetByCustomerMonth(ctx context.Context, customerID, billMonth string) (payments.Bill, error) {
	return s.repo.get(customerID, billMonth)
}

func (s *BillStore) Update(ctx context.Context, b payments.Bill) error {
	return s.repo.put(b)
}

// Seed inserta o pisa una factura; solo para arranque en memoria.
func (s *BillStore) Seed(b payments.Bill) {
	_ = s.repo.put(b)
}

func (r *billRepo) get(customerID, billMonth string) (payments.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bills[billKey(customerID, billMonth)]
	if !ok {
		return payments.Bill{}, payments.ErrNotFound
	}
	return b, nil
}

func (r *billRepo) put(b payments.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills[billKey(b.CustomerID, b.BillMonth)] = b
	return nil
}

func billKey(customerID, billMonth string) string {
	return customerID + "|" + billMonth
}

type settingsRepo struct {
	mu  sync.RWMutex
	val *payments.Settings
}

func NewSettingsRepo() payments.SettingsRepository {
	return &settingsRepo{}
}

func (r *settingsRepo) Get(ctx context.Context) (payments.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.val == nil {
		return payments.Settings{}, payments.ErrNotFound
	}
	return *r.val, nil
}

func (r *settingsRepo) Put(ctx context.Context, s payments.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.val = &s
	return nil
}
