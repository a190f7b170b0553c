package reports

import (
	"context"
	"errors"

	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/domain/expenses"
	"dairy-admin/internal/domain/lifecycle"
)

var ErrUnknownKind = errors.New("unknown report kind")

// Service arma cada reporte recorriendo animales en el orden en que el
// repositorio los lista y, dentro de cada animal, los registros en orden de
// inserción. No re-ordena: el orden de descubrimiento es parte del contrato.
type Service struct {
	animals   *animals.Service
	lifecycle lifecycle.Repository
	expenses  *expenses.Service
}

func NewService(an *animals.Service, lc lifecycle.Repository, ex *expenses.Service) *Service {
	return &Service{animals: an, lifecycle: lc, expenses: ex}
}

func (s *Service) Build(ctx context.Context, kind Kind) (Report, error) {
	switch kind {
	case KindFarmSummary:
		return s.farmSummary(ctx)
	case KindAllInsemination:
		return s.allInsemination(ctx)
	case KindAllCalving:
		return s.allCalving(ctx)
	case KindHealthSummary:
		return s.healthSummary(ctx)
	case KindExpenseSummary:
		return s.expenseSummary(ctx)
	case KindPregnantCows:
		return s.animalList(ctx, KindPregnantCows)
	case KindMilkProduction:
		return s.animalList(ctx, KindMilkProduction)
	case KindCattleList:
		return s.animalList(ctx, KindCattleList)
	default:
		return nil, ErrUnknownKind
	}
}

func (s *Service) farmSummary(ctx context.Context) (Report, error) {
	herd, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	var rep FarmSummaryReport
	for _, a := range herd {
		switch a.Species {
		case animals.SpeciesCow:
			rep.Cows++
		case animals.SpeciesBuffalo:
			rep.Buffalo++
		}
		switch a.Status {
		case animals.StatusPregnant:
			rep.Pregnant++
		case animals.StatusSick:
			rep.Sick++
		}

		ins, err := s.lifecycle.ListInseminations(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		rep.TotalInseminations += len(ins)

		cal, err := s.lifecycle.ListCalvings(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		rep.TotalCalvings += len(cal)

		dew, err := s.lifecycle.ListDewormings(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		rep.TotalDewormings += len(dew)
	}

	rep.TotalAnimals = rep.Cows + rep.Buffalo
	rep.PregnancyRate = safeRate(rep.Pregnant, rep.TotalAnimals) * 100
	rep.AvgInseminations = safeRate(rep.TotalInseminations, rep.TotalAnimals)
	rep.AvgCalvings = safeRate(rep.TotalCalvings, rep.TotalAnimals)
	return rep, nil
}

// safeRate: denominador cero da 0, nunca NaN.
func safeRate(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func (s *Service) allInsemination(ctx context.Context) (Report, error) {
	herd, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	rep := InseminationReport{Rows: []InseminationRow{}}
	for _, a := range herd {
		recs, err := s.lifecycle.ListInseminations(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			rep.Rows = append(rep.Rows, InseminationRow{
				AnimalID:   a.ID,
				AnimalName: a.Name,
				Date:       rec.Date,
				SemenType:  rec.SemenType,
				Technician: rec.Technician,
				Cost:       rec.Cost,
				Notes:      rec.Notes,
			})
		}
	}
	return rep, nil
}

func (s *Service) allCalving(ctx context.Context) (Report, error) {
	herd, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	rep := CalvingReport{Rows: []CalvingRow{}}
	for _, a := range herd {
		recs, err := s.lifecycle.ListCalvings(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			rep.Rows = append(rep.Rows, CalvingRow{
				AnimalID:   a.ID,
				AnimalName: a.Name,
				Date:       rec.Date,
				CalfGender: rec.CalfGender,
				CalfName:   rec.CalfName,
				CalfStatus: string(rec.CalfStatus),
				CalfWeight: rec.CalfWeight,
				Notes:      rec.Notes,
			})
		}
	}
	return rep, nil
}

func (s *Service) healthSummary(ctx context.Context) (Report, error) {
	herd, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	rep := HealthReport{Rows: []HealthRow{}}
	for _, a := range herd {
		dews, err := s.lifecycle.ListDewormings(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range dews {
			rep.Rows = append(rep.Rows, HealthRow{
				AnimalID:   a.ID,
				AnimalName: a.Name,
				Event:      "deworming",
				Date:       rec.Date,
				Detail:     rec.Medicine,
				Treatment:  rec.Dosage,
				Cost:       rec.Cost,
				NextDue:    rec.NextDue,
				Notes:      rec.Notes,
			})
		}

		sick, err := s.lifecycle.ListSicknesses(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range sick {
			rep.Rows = append(rep.Rows, HealthRow{
				AnimalID:   a.ID,
				AnimalName: a.Name,
				Event:      "sickness",
				Date:       rec.Date,
				Detail:     rec.Condition,
				Treatment:  rec.Treatment,
				Cost:       rec.Cost,
				Notes:      rec.Notes,
			})
		}
	}
	return rep, nil
}

func (s *Service) expenseSummary(ctx context.Context) (Report, error) {
	herd, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}
	nameByID := make(map[string]string, len(herd))

	rep := ExpenseReport{Rows: []ExpenseRow{}}
	for _, a := range herd {
		nameByID[a.ID] = a.Name

		dews, err := s.lifecycle.ListDewormings(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range dews {
			if rec.Cost <= 0 {
				continue
			}
			rep.Rows = append(rep.Rows, ExpenseRow{
				Source:     "deworming",
				AnimalID:   a.ID,
				AnimalName: a.Name,
				Date:       rec.Date,
				Category:   string(expenses.CategoryMedicine),
				Detail:     rec.Medicine,
				Amount:     rec.Cost,
			})
			rep.Total += rec.Cost
		}

		sick, err := s.lifecycle.ListSicknesses(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		for _, rec := range sick {
			if rec.Cost <= 0 {
				continue
			}
			rep.Rows = append(rep.Rows, ExpenseRow{
				Source:     "sickness",
				AnimalID:   a.ID,
				AnimalName: a.Name,
				Date:       rec.Date,
				Category:   string(expenses.CategoryVet),
				Detail:     rec.Condition,
				Amount:     rec.Cost,
			})
			rep.Total += rec.Cost
		}
	}

	// después de los logs sanitarios van los gastos del ledger con animal
	ledger, err := s.expenses.List(ctx, expenses.Filter{})
	if err != nil {
		return nil, err
	}
	for _, e := range ledger {
		if e.AnimalID == "" {
			continue
		}
		rep.Rows = append(rep.Rows, ExpenseRow{
			Source:     "ledger",
			AnimalID:   e.AnimalID,
			AnimalName: nameByID[e.AnimalID],
			Date:       e.Date,
			Category:   string(e.Category),
			Detail:     e.Description,
			Amount:     e.Amount,
		})
		rep.Total += e.Amount
	}
	return rep, nil
}

func (s *Service) animalList(ctx context.Context, kind Kind) (Report, error) {
	herd, err := s.animals.List(ctx, animals.Filter{})
	if err != nil {
		return nil, err
	}

	rep := AnimalListReport{Kind: kind, Rows: []AnimalRow{}}
	for _, a := range herd {
		switch kind {
		case KindPregnantCows:
			if a.Status != animals.StatusPregnant {
				continue
			}
		case KindMilkProduction:
			if a.CurrentDailyMilk <= 0 {
				continue
			}
		}
		rep.Rows = append(rep.Rows, AnimalRow{
			AnimalID:         a.ID,
			AnimalName:       a.Name,
			Species:          string(a.Species),
			Status:           string(a.Status),
			ExpectedCalving:  a.ExpectedCalvingDate,
			CurrentDailyMilk: a.CurrentDailyMilk,
			TotalMilk:        a.TotalMilk,
			TotalCalvings:    a.TotalCalvings,
		})
	}
	return rep, nil
}
