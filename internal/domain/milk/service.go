package milk

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/platform/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo       Repository
	animalsSvc *animals.Service
	now        func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service) *Service {
	return &Service{
		repo:       repo,
		animalsSvc: animalsSvc,
		now:        time.Now,
	}
}

type CreateInput struct {
	Date     dates.Date
	AnimalID string

	MorningLiters float64
	MorningFat    float64
	MorningSNF    float64

	EveningLiters float64
	EveningFat    float64
	EveningSNF    float64

	Rate  float64
	Notes string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Record, error) {
	if in.Date.IsZero() {
		return Record{}, ErrInvalidInput
	}
	if in.MorningLiters < 0 || in.EveningLiters < 0 || in.Rate < 0 {
		return Record{}, ErrInvalidInput
	}
	if in.MorningLiters+in.EveningLiters == 0 {
		return Record{}, ErrInvalidInput
	}

	animalID := strings.TrimSpace(in.AnimalID)
	if animalID != "" {
		if _, err := s.animalsSvc.GetByID(ctx, animalID); err != nil {
			return Record{}, err
		}
	}

	rec := Record{
		ID:            uuid.NewString(),
		Date:          in.Date,
		AnimalID:      animalID,
		MorningLiters: in.MorningLiters,
		MorningFat:    in.MorningFat,
		MorningSNF:    in.MorningSNF,
		EveningLiters: in.EveningLiters,
		EveningFat:    in.EveningFat,
		EveningSNF:    in.EveningSNF,
		Rate:          in.Rate,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}

	// Acumulado histórico del animal; un registro del tanque no referencia a nadie.
	if animalID != "" {
		if err := s.animalsSvc.AddMilk(ctx, animalID, rec.TotalLiters()); err != nil {
			return Record{}, err
		}
	}

	return rec, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Record, error) {
	return s.repo.List(ctx, f)
}

// Summarize agrega el período: litros, facturación y promedios ponderados.
func (s *Service) Summarize(ctx context.Context, f Filter) (Summary, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	var fatWeighted, snfWeighted float64
	for _, r := range items {
		liters := r.TotalLiters()
		sum.Records++
		sum.TotalLiters += liters
		sum.Revenue += r.Revenue()
		fatWeighted += r.AvgFat() * liters
		snfWeighted += r.AvgSNF() * liters
	}
	if sum.TotalLiters > 0 {
		sum.AvgFat = fatWeighted / sum.TotalLiters
		sum.AvgSNF = snfWeighted / sum.TotalLiters
	}
	return sum, nil
}
