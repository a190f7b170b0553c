package lifecycle

import "context"

// Repository persiste los logs append-only. Los List devuelven SIEMPRE en
// orden de inserción: los reportes aplanados dependen de ese orden estable.
type Repository interface {
	AppendInsemination(ctx context.Context, rec InseminationRecord) error
	ListInseminations(ctx context.Context, animalID string) ([]InseminationRecord, error)

	AppendCalving(ctx context.Context, rec CalvingRecord) error
	ListCalvings(ctx context.Context, animalID string) ([]CalvingRecord, error)

	AppendDeworming(ctx context.Context, rec DewormingRecord) error
	ListDewormings(ctx context.Context, animalID string) ([]DewormingRecord, error)

	AppendSickness(ctx context.Context, rec SicknessRecord) error
	ListSicknesses(ctx context.Context, animalID string) ([]SicknessRecord, error)
}
