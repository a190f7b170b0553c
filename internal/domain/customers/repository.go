package customers

import "context"

type Repository interface {
	Create(ctx context.Context, c Customer) error
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
}
