package reminders

import (
	"context"
	"time"

	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/domain/lifecycle"
	"dairy-admin/internal/platform/dates"
)

type Service struct {
	animalsSvc *animals.Service
	records    lifecycle.Repository
	windowDays int
	now        func() time.Time
}

func NewService(animalsSvc *animals.Service, records lifecycle.Repository, windowDays int) *Service {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Service{
		animalsSvc: animalsSvc,
		records:    records,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// Upcoming recorre el hato, arma los candidatos y delega en Compute.
func (s *Service) Upcoming(ctx context.Context) ([]Reminder, error) {
	items, err := s.animalsSvc.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	cands := make([]Candidate, 0, len(items))
	for _, a := range items {
		c := Candidate{
			AnimalID:        a.ID,
			AnimalName:      a.Name,
			ExpectedCalving: a.ExpectedCalvingDate,
		}

		recs, err := s.records.ListDewormings(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		// El más reciente es el último apendeado.
		if len(recs) > 0 {
			c.DewormingDue = recs[len(recs)-1].NextDue
		}

		cands = append(cands, c)
	}

	return Compute(cands, dates.Today(s.now), s.windowDays), nil
}
