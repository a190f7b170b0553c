package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

type Service struct {
	products     ProductRepository
	reservations ReservationRepository
	now          func() time.Time
}

func NewService(products ProductRepository, reservations ReservationRepository) *Service {
	return &Service{
		products:     products,
		reservations: reservations,
		now:          time.Now,
	}
}

type ProductInput struct {
	Name            string
	Category        string
	Unit            string
	Price           float64
	Stock           float64
	IsSpecial       bool
	AdvanceBookable bool
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return Product{}, ErrInvalidInput
	}
	if in.Price < 0 || in.Stock < 0 {
		return Product{}, ErrInvalidInput
	}

	now := s.now()
	p := Product{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		Category:        strings.TrimSpace(in.Category),
		Unit:            strings.TrimSpace(in.Unit),
		Price:           in.Price,
		Stock:           in.Stock,
		IsSpecial:       in.IsSpecial,
		AdvanceBookable: in.AdvanceBookable,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.products.Create(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// UpdateProduct es un PATCH: solo pisa lo que viene no-nil.
type ProductPatch struct {
	Name            *string
	Category        *string
	Unit            *string
	Price           *float64
	Stock           *float64
	IsSpecial       *bool
	AdvanceBookable *bool
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	p, err := s.getProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return Product{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Unit != nil {
		p.Unit = strings.TrimSpace(*patch.Unit)
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return Product{}, ErrInvalidInput
		}
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return Product{}, ErrInvalidInput
		}
		p.Stock = *patch.Stock
	}
	if patch.IsSpecial != nil {
		p.IsSpecial = *patch.IsSpecial
	}
	if patch.AdvanceBookable != nil {
		p.AdvanceBookable = *patch.AdvanceBookable
	}
	p.UpdatedAt = s.now()

	if err := s.products.Update(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// DeactivateProduct: el "delete" de productos es lógico.
func (s *Service) DeactivateProduct(ctx context.Context, id string) error {
	p, err := s.getProduct(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return nil // ya inactivo, idempotente
	}
	p.IsActive = false
	p.UpdatedAt = s.now()
	return s.products.Update(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (Product, error) {
	return s.getProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	return s.products.List(ctx, f)
}

// Categories deriva la lista de categorías de los productos activos,
// ordenada y sin duplicados. El sitio público la usa para los filtros.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	items, err := s.products.List(ctx, ProductFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range items {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

type ReservationInput struct {
	CustomerID    string
	ProductID     string
	Quantity      float64
	Deposit       float64
	PaymentMethod string
	Notes         string
}

// CreateReservation valida que el producto exista, esté activo y sea
// reservable; el total se calcula con el precio vigente.
func (s *Service) CreateReservation(ctx context.Context, in ReservationInput) (SpecialReservation, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return SpecialReservation{}, ErrInvalidInput
	}
	if in.Quantity <= 0 || in.Deposit < 0 {
		return SpecialReservation{}, ErrInvalidInput
	}

	p, err := s.getProduct(ctx, in.ProductID)
	if err != nil {
		return SpecialReservation{}, err
	}
	if !p.IsActive || !p.AdvanceBookable {
		return SpecialReservation{}, ErrBadState
	}

	total := p.Price * in.Quantity
	if in.Deposit > total {
		return SpecialReservation{}, ErrInvalidInput
	}

	paymentStatus := PaymentPending
	if in.Deposit > 0 {
		paymentStatus = PaymentDepositPaid
	}

	sr := SpecialReservation{
		ID:             uuid.NewString(),
		CustomerID:     strings.TrimSpace(in.CustomerID),
		ProductID:      p.ID,
		Quantity:       in.Quantity,
		Deposit:        in.Deposit,
		Total:          total,
		PaymentMethod:  strings.TrimSpace(in.PaymentMethod),
		PaymentStatus:  paymentStatus,
		DeliveryStatus: DeliveryPending,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      s.now(),
	}

	if err := s.reservations.Create(ctx, sr); err != nil {
		return SpecialReservation{}, err
	}
	return sr, nil
}

func (s *Service) ListReservations(ctx context.Context) ([]SpecialReservation, error) {
	return s.reservations.List(ctx)
}

func (s *Service) GetReservation(ctx context.Context, id string) (SpecialReservation, error) {
	return s.getReservation(ctx, id)
}

// UpdateDeliveryStatus: una reserva entregada o cancelada ya no cambia.
func (s *Service) UpdateDeliveryStatus(ctx context.Context, id string, status DeliveryStatus) (SpecialReservation, error) {
	if !ValidDeliveryStatus(status) {
		return SpecialReservation{}, ErrInvalidInput
	}
	sr, err := s.getReservation(ctx, id)
	if err != nil {
		return SpecialReservation{}, err
	}
	if sr.DeliveryStatus == DeliveryDelivered || sr.DeliveryStatus == DeliveryCancelled {
		if sr.DeliveryStatus == status {
			return sr, nil
		}
		return SpecialReservation{}, ErrBadState
	}

	sr.DeliveryStatus = status
	if err := s.reservations.Update(ctx, sr); err != nil {
		return SpecialReservation{}, err
	}
	return sr, nil
}

// UpdatePayment registra el avance de pago de la reserva.
func (s *Service) UpdatePayment(ctx context.Context, id string, status PaymentStatus, deposit *float64) (SpecialReservation, error) {
	if !ValidPaymentStatus(status) {
		return SpecialReservation{}, ErrInvalidInput
	}
	sr, err := s.getReservation(ctx, id)
	if err != nil {
		return SpecialReservation{}, err
	}

	if deposit != nil {
		if *deposit < 0 || *deposit > sr.Total {
			return SpecialReservation{}, ErrInvalidInput
		}
		sr.Deposit = *deposit
	}
	sr.PaymentStatus = status

	if err := s.reservations.Update(ctx, sr); err != nil {
		return SpecialReservation{}, err
	}
	return sr, nil
}

func (s *Service) DeleteReservation(ctx context.Context, id string) error {
	sr, err := s.getReservation(ctx, id)
	if err != nil {
		return err
	}
	// una reserva entregada queda como historial, no se borra
	if sr.DeliveryStatus == DeliveryDelivered {
		return ErrBadState
	}
	return s.reservations.Delete(ctx, sr.ID)
}

func (s *Service) getProduct(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, ErrInvalidInput
	}
	return s.products.GetByID(ctx, id)
}

func (s *Service) getReservation(ctx context.Context, id string) (SpecialReservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return SpecialReservation{}, ErrInvalidInput
	}
	return s.reservations.GetByID(ctx, id)
}
