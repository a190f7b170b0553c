package milk

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/platform/dates"
)

type testRepo struct {
	recs []Record
}

func (r *testRepo) Create(ctx context.Context, rec Record) error {
	r.recs = append(r.recs, rec)
	return nil
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.recs {
		if f.AnimalID != "" && rec.AnimalID != f.AnimalID {
			continue
		}
		if f.From != nil && rec.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && rec.Date.After(*f.To) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type testAnimalRepo struct {
	byID map[string]animals.Animal
}

func (r *testAnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testAnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return animals.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testAnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *testAnimalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func day(y, m, d int) dates.Date {
	return dates.Date{Year: y, Month: time.Month(m), Day: d}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecord_DerivedFields(t *testing.T) {
	r := Record{
		MorningLiters: 10, MorningFat: 4.0, MorningSNF: 8.0,
		EveningLiters: 5, EveningFat: 4.6, EveningSNF: 8.6,
		Rate: 50,
	}

	if r.TotalLiters() != 15 {
		t.Fatalf("expected 15 liters, got %v", r.TotalLiters())
	}
	if !almostEqual(r.Revenue(), 750) {
		t.Fatalf("expected revenue 750, got %v", r.Revenue())
	}
	// (10*4.0 + 5*4.6) / 15 = 4.2
	if !almostEqual(r.AvgFat(), 4.2) {
		t.Fatalf("expected avg fat 4.2, got %v", r.AvgFat())
	}
	// (10*8.0 + 5*8.6) / 15 = 8.2
	if !almostEqual(r.AvgSNF(), 8.2) {
		t.Fatalf("expected avg snf 8.2, got %v", r.AvgSNF())
	}
}

func TestService_Create_RequiresSomeLiters(t *testing.T) {
	animalsSvc := animals.NewService(&testAnimalRepo{byID: map[string]animals.Animal{}})
	svc := NewService(&testRepo{}, animalsSvc)

	_, err := svc.Create(context.Background(), CreateInput{Date: day(2024, 3, 5)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput with zero liters, got %v", err)
	}
}

func TestService_Create_AccumulatesAnimalTotal(t *testing.T) {
	animalRepo := &testAnimalRepo{byID: map[string]animals.Animal{}}
	animalsSvc := animals.NewService(animalRepo)
	svc := NewService(&testRepo{}, animalsSvc)
	ctx := context.Background()

	a, _ := animalsSvc.Create(ctx, animals.CreateInput{Name: "Ganga", Species: "cow"})

	_, err := svc.Create(ctx, CreateInput{Date: day(2024, 3, 5), AnimalID: a.ID, MorningLiters: 10, EveningLiters: 5})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	_, err = svc.Create(ctx, CreateInput{Date: day(2024, 3, 6), AnimalID: a.ID, MorningLiters: 8, EveningLiters: 6})
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}

	if got := animalRepo.byID[a.ID].TotalMilk; got != 29 {
		t.Fatalf("expected accumulated 29 liters, got %v", got)
	}
}

func TestService_Create_UnknownAnimalFails(t *testing.T) {
	animalsSvc := animals.NewService(&testAnimalRepo{byID: map[string]animals.Animal{}})
	svc := NewService(&testRepo{}, animalsSvc)

	_, err := svc.Create(context.Background(), CreateInput{
		Date: day(2024, 3, 5), AnimalID: "nope", MorningLiters: 10,
	})
	if !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected animals.ErrNotFound, got %v", err)
	}
}

func TestService_Summarize_WeightedAverages(t *testing.T) {
	repo := &testRepo{}
	animalsSvc := animals.NewService(&testAnimalRepo{byID: map[string]animals.Animal{}})
	svc := NewService(repo, animalsSvc)
	ctx := context.Background()

	// 15 L a fat 4.2 y 5 L a fat 5.0
	if _, err := svc.Create(ctx, CreateInput{
		Date:          day(2024, 3, 5),
		MorningLiters: 10, MorningFat: 4.0,
		EveningLiters: 5, EveningFat: 4.6,
		Rate: 50,
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{
		Date:          day(2024, 3, 6),
		MorningLiters: 5, MorningFat: 5.0,
		Rate: 60,
	}); err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}

	sum, err := svc.Summarize(ctx, Filter{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if sum.Records != 2 || sum.TotalLiters != 20 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if !almostEqual(sum.Revenue, 15*50+5*60) {
		t.Fatalf("unexpected revenue: %v", sum.Revenue)
	}
	// (15*4.2 + 5*5.0) / 20 = 4.4
	if !almostEqual(sum.AvgFat, 4.4) {
		t.Fatalf("expected avg fat 4.4, got %v", sum.AvgFat)
	}
}

func TestService_Summarize_DateFilter(t *testing.T) {
	repo := &testRepo{}
	animalsSvc := animals.NewService(&testAnimalRepo{byID: map[string]animals.Animal{}})
	svc := NewService(repo, animalsSvc)
	ctx := context.Background()

	_, _ = svc.Create(ctx, CreateInput{Date: day(2024, 3, 5), MorningLiters: 10, Rate: 50})
	_, _ = svc.Create(ctx, CreateInput{Date: day(2024, 4, 5), MorningLiters: 20, Rate: 50})

	from := day(2024, 4, 1)
	sum, err := svc.Summarize(ctx, Filter{From: &from})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if sum.Records != 1 || sum.TotalLiters != 20 {
		t.Fatalf("expected only april record, got %+v", sum)
	}
}
