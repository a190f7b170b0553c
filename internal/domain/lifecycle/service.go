package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/domain/expenses"
	"dairy-admin/internal/platform/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrPriorInsemination: ya existe una inseminación previa y el admin no
	// confirmó el descarte del semen anterior.
	ErrPriorInsemination = errors.New("prior insemination requires acknowledgement")
)

type Service struct {
	repo       Repository
	animalsSvc *animals.Service
	expSvc     *expenses.Service
	now        func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service, expSvc *expenses.Service) *Service {
	return &Service{
		repo:       repo,
		animalsSvc: animalsSvc,
		expSvc:     expSvc,
		now:        time.Now,
	}
}

// History devuelve los cuatro logs del animal (valida que exista).
func (s *Service) History(ctx context.Context, animalID string) (History, error) {
	if _, err := s.animalsSvc.GetByID(ctx, animalID); err != nil {
		return History{}, err
	}

	var h History
	var err error
	if h.Inseminations, err = s.repo.ListInseminations(ctx, animalID); err != nil {
		return History{}, err
	}
	if h.Calvings, err = s.repo.ListCalvings(ctx, animalID); err != nil {
		return History{}, err
	}
	if h.Dewormings, err = s.repo.ListDewormings(ctx, animalID); err != nil {
		return History{}, err
	}
	if h.Sicknesses, err = s.repo.ListSicknesses(ctx, animalID); err != nil {
		return History{}, err
	}
	return h, nil
}

type InseminationInput struct {
	Date       dates.Date
	SemenType  string
	Technician string
	Cost       float64
	Notes      string

	// Si el animal ya tiene inseminaciones previas, el admin debe confirmar
	// explícitamente que descarta el semen anterior.
	AcknowledgePrevious bool
}

// RecordInsemination apendea al log. No cambia el estado: la preñez solo se
// confirma con la acción explícita (ConfirmPregnancy / ConfirmCrossing).
func (s *Service) RecordInsemination(ctx context.Context, animalID string, in InseminationInput) (InseminationRecord, error) {
	if _, err := s.animalsSvc.GetByID(ctx, animalID); err != nil {
		return InseminationRecord{}, err
	}
	if in.Date.IsZero() {
		return InseminationRecord{}, ErrInvalidInput
	}

	prior, err := s.repo.ListInseminations(ctx, animalID)
	if err != nil {
		return InseminationRecord{}, err
	}
	if len(prior) > 0 && !in.AcknowledgePrevious {
		return InseminationRecord{}, ErrPriorInsemination
	}

	rec := InseminationRecord{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		Date:       in.Date,
		SemenType:  strings.TrimSpace(in.SemenType),
		Technician: strings.TrimSpace(in.Technician),
		Cost:       in.Cost,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  s.now(),
	}

	if err := s.repo.AppendInsemination(ctx, rec); err != nil {
		return InseminationRecord{}, err
	}

	if err := s.animalsSvc.SetLastInsemination(ctx, animalID, in.Date); err != nil {
		return InseminationRecord{}, err
	}
	return rec, nil
}

// ConfirmCrossing es el atajo de cruce confirmado: delega en animals la
// transición (pregnant + last_insemination_date), sin apendear registro.
func (s *Service) ConfirmCrossing(ctx context.Context, animalID string, date dates.Date) (animals.Animal, error) {
	return s.animalsSvc.ConfirmCrossing(ctx, animalID, date)
}

type CalvingInput struct {
	Date       dates.Date
	CalfGender string
	CalfName   string
	CalfStatus CalfStatus
	CalfWeight float64
	Notes      string
}

// RecordCalving apendea el parto y suma al contador total del animal.
// No toca el estado: pasar a "active" o "dry" después del parto es decisión
// explícita del admin.
func (s *Service) RecordCalving(ctx context.Context, animalID string, in CalvingInput) (CalvingRecord, error) {
	if _, err := s.animalsSvc.GetByID(ctx, animalID); err != nil {
		return CalvingRecord{}, err
	}
	if in.Date.IsZero() {
		return CalvingRecord{}, ErrInvalidInput
	}
	if in.CalfStatus == "" {
		in.CalfStatus = CalfAlive
	}
	if !ValidCalfStatus(in.CalfStatus) {
		return CalvingRecord{}, ErrInvalidInput
	}

	rec := CalvingRecord{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		Date:       in.Date,
		CalfGender: strings.TrimSpace(in.CalfGender),
		CalfName:   strings.TrimSpace(in.CalfName),
		CalfStatus: in.CalfStatus,
		CalfWeight: in.CalfWeight,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  s.now(),
	}

	if err := s.repo.AppendCalving(ctx, rec); err != nil {
		return CalvingRecord{}, err
	}

	if err := s.animalsSvc.IncrementCalvings(ctx, animalID); err != nil {
		return CalvingRecord{}, err
	}
	return rec, nil
}

type DewormingInput struct {
	Date     dates.Date
	Medicine string
	Dosage   string
	Cost     float64
	NextDue  *dates.Date
	Notes    string
}

func (s *Service) RecordDeworming(ctx context.Context, animalID string, in DewormingInput) (DewormingRecord, error) {
	if _, err := s.animalsSvc.GetByID(ctx, animalID); err != nil {
		return DewormingRecord{}, err
	}
	if in.Date.IsZero() || strings.TrimSpace(in.Medicine) == "" {
		return DewormingRecord{}, ErrInvalidInput
	}

	rec := DewormingRecord{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		Date:      in.Date,
		Medicine:  strings.TrimSpace(in.Medicine),
		Dosage:    strings.TrimSpace(in.Dosage),
		Cost:      in.Cost,
		NextDue:   in.NextDue,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}

	if err := s.repo.AppendDeworming(ctx, rec); err != nil {
		return DewormingRecord{}, err
	}
	return rec, nil
}

type SicknessInput struct {
	Date      dates.Date
	Condition string
	Treatment string
	Cost      float64
	Notes     string
}

// RecordSickness apendea el registro, fuerza estado sick y, si hubo costo,
// crea el gasto de medicina ligado al animal. No es transaccional: si el
// gasto falla, el registro y el estado quedan y el error se reporta.
func (s *Service) RecordSickness(ctx context.Context, animalID string, in SicknessInput) (SicknessRecord, error) {
	if _, err := s.animalsSvc.GetByID(ctx, animalID); err != nil {
		return SicknessRecord{}, err
	}
	if in.Date.IsZero() || strings.TrimSpace(in.Condition) == "" {
		return SicknessRecord{}, ErrInvalidInput
	}

	rec := SicknessRecord{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		Date:      in.Date,
		Condition: strings.TrimSpace(in.Condition),
		Treatment: strings.TrimSpace(in.Treatment),
		Cost:      in.Cost,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}

	if err := s.repo.AppendSickness(ctx, rec); err != nil {
		return SicknessRecord{}, err
	}

	if _, err := s.animalsSvc.MarkSick(ctx, animalID); err != nil {
		return SicknessRecord{}, err
	}

	if in.Cost > 0 {
		_, err := s.expSvc.Create(ctx, expenses.CreateInput{
			Date:        in.Date,
			Category:    expenses.CategoryMedicine,
			Amount:      in.Cost,
			Description: rec.Condition,
			AnimalID:    animalID,
		})
		if err != nil {
			return SicknessRecord{}, fmt.Errorf("sickness recorded but expense failed: %w", err)
		}
	}

	return rec, nil
}
