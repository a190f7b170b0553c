package expenses

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dairy-admin/internal/platform/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Date        dates.Date
	Category    Category
	Amount      float64
	Description string
	AnimalID    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Expense, error) {
	if in.Date.IsZero() {
		return Expense{}, ErrInvalidInput
	}
	if !ValidCategory(in.Category) {
		return Expense{}, ErrInvalidInput
	}
	if in.Amount <= 0 {
		return Expense{}, ErrInvalidInput
	}

	e := Expense{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		AnimalID:    strings.TrimSpace(in.AnimalID),
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Expense, error) {
	if f.Category != "" && !ValidCategory(f.Category) {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, f)
}

// TotalsByCategory agrega el ledger filtrado para el resumen de costos.
func (s *Service) TotalsByCategory(ctx context.Context, f Filter) (map[Category]float64, float64, error) {
	items, err := s.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	totals := make(map[Category]float64)
	var grand float64
	for _, e := range items {
		totals[e.Category] += e.Amount
		grand += e.Amount
	}
	return totals, grand, nil
}
