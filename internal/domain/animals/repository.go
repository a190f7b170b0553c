package animals

import "context"

// Filter acota List; zero value = todo el hato.
type Filter struct {
	Species Species
	Status  Status
}

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, f Filter) ([]Animal, error)
}
