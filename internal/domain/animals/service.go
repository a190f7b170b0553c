package animals

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
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
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
	Name        string
	Species     string
	BirthDate   *dates.Date
	EntryDate   *dates.Date
	Source      string
	HealthNotes string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	sp := Species(strings.TrimSpace(in.Species))
	if !ValidSpecies(sp) {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	a := Animal{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Species:     sp,
		Status:      StatusActive,
		BirthDate:   in.BirthDate,
		EntryDate:   in.EntryDate,
		Source:      strings.TrimSpace(in.Source),
		HealthNotes: strings.TrimSpace(in.HealthNotes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Animal, error) {
	return s.repo.List(ctx, f)
}

// Counts recorre el hato y arma los contadores del overview.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	items, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return Counts{}, err
	}

	var c Counts
	for _, a := range items {
		c.Total++
		switch a.Species {
		case SpeciesCow:
			c.Cows++
		case SpeciesBuffalo:
			c.Buffalo++
		}
		switch a.Status {
		case StatusActive:
			c.Active++
		case StatusPregnant:
			c.Pregnant++
		case StatusDry:
			c.Dry++
		case StatusSick:
			c.Sick++
		}
	}
	return c, nil
}

// UpdateProfileInput: punteros para PATCH real, nil = no tocar.
// Para fechas, string vacío limpia el campo.
type UpdateProfileInput struct {
	Name        *string
	Source      *string
	HealthNotes *string
	BirthDate   *string
	EntryDate   *string
	MilkRate    *float64 // litros actuales por día (campo derivado, editable)
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Name = name
	}
	if in.Source != nil {
		a.Source = strings.TrimSpace(*in.Source)
	}
	if in.HealthNotes != nil {
		a.HealthNotes = strings.TrimSpace(*in.HealthNotes)
	}
	if in.BirthDate != nil {
		d, err := dates.ParseOptional(*in.BirthDate)
		if err != nil {
			return Animal{}, ErrInvalidInput
		}
		a.BirthDate = d
	}
	if in.EntryDate != nil {
		d, err := dates.ParseOptional(*in.EntryDate)
		if err != nil {
			return Animal{}, ErrInvalidInput
		}
		a.EntryDate = d
	}
	if in.MilkRate != nil {
		if *in.MilkRate < 0 {
			return Animal{}, ErrInvalidInput
		}
		a.CurrentDailyMilk = *in.MilkRate
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// ---- Transiciones de estado (siempre acción explícita del admin) ----

// ConfirmPregnancy registra preñez confirmada con fecha estimada de parto.
func (s *Service) ConfirmPregnancy(ctx context.Context, id string, expected dates.Date) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if expected.IsZero() {
		return Animal{}, ErrInvalidInput
	}

	a.PregnancyStatus = true
	a.Status = StatusPregnant
	a.ExpectedCalvingDate = &expected
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// ConfirmCrossing es el atajo "cruce confirmado": preñada + última inseminación.
func (s *Service) ConfirmCrossing(ctx context.Context, id string, date dates.Date) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if date.IsZero() {
		return Animal{}, ErrInvalidInput
	}

	a.PregnancyStatus = true
	a.Status = StatusPregnant
	a.LastInseminationDate = &date
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// MarkDry seca al animal; el motivo va al historial de notas.
func (s *Service) MarkDry(ctx context.Context, id, reason string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	today := dates.Today(s.now)
	a.Status = StatusDry
	a.DryStartDate = &today
	if r := strings.TrimSpace(reason); r != "" {
		if a.HealthNotes != "" {
			a.HealthNotes += "\n"
		}
		a.HealthNotes += "[dry " + today.String() + "] " + r
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// MarkSick fuerza estado sick (lo invoca lifecycle al registrar enfermedad).
func (s *Service) MarkSick(ctx context.Context, id string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	a.Status = StatusSick
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// MarkRecovered vuelve a active desde sick o dry.
// Una preñada no se "recupera"; eso sería pisar la preñez por accidente.
func (s *Service) MarkRecovered(ctx context.Context, id string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	switch a.Status {
	case StatusSick, StatusDry:
		// ok
	case StatusActive:
		return a, nil // idempotente
	default:
		return Animal{}, ErrBadState
	}

	a.Status = StatusActive
	a.DryStartDate = nil
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// ---- Campos derivados que mantiene lifecycle al apendear registros ----

func (s *Service) SetLastInsemination(ctx context.Context, id string, date dates.Date) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.LastInseminationDate = &date
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}

func (s *Service) IncrementCalvings(ctx context.Context, id string) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.TotalCalvings++
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}

// AddMilk acumula producción histórica (lo invoca el módulo milk al crear registros).
func (s *Service) AddMilk(ctx context.Context, id string, liters float64) error {
	if liters < 0 {
		return ErrInvalidInput
	}
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.TotalMilk += liters
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}
