package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// ErrBadState: destacar o borrar exige reseña aprobada; decidir exige pending.
	ErrBadState = errors.New("invalid state")
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

type SubmitInput struct {
	CustomerName string
	Rating       int
	Text         string
	Location     string
}

// Submit crea la reseña en pending; nada público hasta que el admin apruebe.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Review, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return Review{}, ErrInvalidInput
	}
	if in.Rating < 1 || in.Rating > 5 {
		return Review{}, ErrInvalidInput
	}

	rv := Review{
		ID:           uuid.NewString(),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Rating:       in.Rating,
		Text:         strings.TrimSpace(in.Text),
		Location:     strings.TrimSpace(in.Location),
		Status:       StatusPending,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.repo.List(ctx)
}

// ListApproved filtra lo que ve el sitio público.
func (s *Service) ListApproved(ctx context.Context) ([]Review, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Review, 0, len(items))
	for _, rv := range items {
		if rv.Status == StatusApproved {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (s *Service) Approve(ctx context.Context, id string) (Review, error) {
	rv, err := s.get(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if rv.Status == StatusApproved {
		return rv, nil // idempotente
	}
	if rv.Status != StatusPending {
		return Review{}, ErrBadState
	}

	now := s.now()
	rv.Status = StatusApproved
	rv.ModeratedAt = &now

	if err := s.repo.Update(ctx, rv); err != nil {
		return Review{}, err
	}
	return rv, nil
}

// Reject es válido sobre una pending que nunca fue aprobada.
func (s *Service) Reject(ctx context.Context, id string) (Review, error) {
	rv, err := s.get(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if rv.Status == StatusRejected {
		return rv, nil // idempotente
	}
	if rv.Status != StatusPending {
		return Review{}, ErrBadState
	}

	now := s.now()
	rv.Status = StatusRejected
	rv.IsFeatured = false
	rv.ModeratedAt = &now

	if err := s.repo.Update(ctx, rv); err != nil {
		return Review{}, err
	}
	return rv, nil
}

// SetFeatured solo opera sobre aprobadas; una pending no puede destacarse.
func (s *Service) SetFeatured(ctx context.Context, id string, featured bool) (Review, error) {
	rv, err := s.get(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if rv.Status != StatusApproved {
		return Review{}, ErrBadState
	}

	rv.IsFeatured = featured
	if err := s.repo.Update(ctx, rv); err != nil {
		return Review{}, err
	}
	return rv, nil
}

// Delete solo borra aprobadas (las pending se rechazan, no se borran).
func (s *Service) Delete(ctx context.Context, id string) error {
	rv, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if rv.Status != StatusApproved {
		return ErrBadState
	}
	return s.repo.Delete(ctx, rv.ID)
}

func (s *Service) get(ctx context.Context, id string) (Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Review{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}
