package catalog

import "context"

type ProductFilter struct {
	Category   string // vacío = todas
	OnlyActive bool
}

type ProductRepository interface {
	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, sr SpecialReservation) error
	Update(ctx context.Context, sr SpecialReservation) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (SpecialReservation, error)
	List(ctx context.Context) ([]SpecialReservation, error)
}
