package reviews

import "context"

type Repository interface {
	Create(ctx context.Context, rv Review) error
	Update(ctx context.Context, rv Review) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Review, error)
	List(ctx context.Context) ([]Review, error)
}
