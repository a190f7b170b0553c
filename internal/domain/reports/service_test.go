package reports

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/domain/expenses"
	"dairy-admin/internal/domain/lifecycle"
	"dairy-admin/internal/platform/dates"
)

type testAnimalRepo struct {
	items []animals.Animal
}

func (r *testAnimalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.items = append(r.items, a)
	return nil
}

func (r *testAnimalRepo) Update(ctx context.Context, a animals.Animal) error {
	for i := range r.items {
		if r.items[i].ID == a.ID {
			r.items[i] = a
			return nil
		}
	}
	return animals.ErrNotFound
}

func (r *testAnimalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return animals.Animal{}, animals.ErrNotFound
}

func (r *testAnimalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0, len(r.items))
	for _, a := range r.items {
		if f.Species != "" && a.Species != f.Species {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type testLifecycleRepo struct {
	inseminations map[string][]lifecycle.InseminationRecord
	calvings      map[string][]lifecycle.CalvingRecord
	dewormings    map[string][]lifecycle.DewormingRecord
	sicknesses    map[string][]lifecycle.SicknessRecord
}

func newTestLifecycleRepo() *testLifecycleRepo {
	return &testLifecycleRepo{
		inseminations: map[string][]lifecycle.InseminationRecord{},
		calvings:      map[string][]lifecycle.CalvingRecord{},
		dewormings:    map[string][]lifecycle.DewormingRecord{},
		sicknesses:    map[string][]lifecycle.SicknessRecord{},
	}
}

func (r *testLifecycleRepo) AppendInsemination(ctx context.Context, rec lifecycle.InseminationRecord) error {
	r.inseminations[rec.AnimalID] = append(r.inseminations[rec.AnimalID], rec)
	return nil
}

func (r *testLifecycleRepo) ListInseminations(ctx context.Context, animalID string) ([]lifecycle.InseminationRecord, error) {
	return r.inseminations[animalID], nil
}

func (r *testLifecycleRepo) AppendCalving(ctx context.Context, rec lifecycle.CalvingRecord) error {
	r.calvings[rec.AnimalID] = append(r.calvings[rec.AnimalID], rec)
	return nil
}

func (r *testLifecycleRepo) ListCalvings(ctx context.Context, animalID string) ([]lifecycle.CalvingRecord, error) {
	return r.calvings[animalID], nil
}

func (r *testLifecycleRepo) AppendDeworming(ctx context.Context, rec lifecycle.DewormingRecord) error {
	r.dewormings[rec.AnimalID] = append(r.dewormings[rec.AnimalID], rec)
	return nil
}

func (r *testLifecycleRepo) ListDewormings(ctx context.Context, animalID string) ([]lifecycle.DewormingRecord, error) {
	return r.dewormings[animalID], nil
}

func (r *testLifecycleRepo) AppendSickness(ctx context.Context, rec lifecycle.SicknessRecord) error {
	r.sicknesses[rec.AnimalID] = append(r.sicknesses[rec.AnimalID], rec)
	return nil
}

func (r *testLifecycleRepo) ListSicknesses(ctx context.Context, animalID string) ([]lifecycle.SicknessRecord, error) {
	return r.sicknesses[animalID], nil
}

type testExpenseRepo struct {
	items []expenses.Expense
}

func (r *testExpenseRepo) Create(ctx context.Context, e expenses.Expense) error {
	r.items = append(r.items, e)
	return nil
}

func (r *testExpenseRepo) List(ctx context.Context, f expenses.Filter) ([]expenses.Expense, error) {
	return r.items, nil
}

type fixture struct {
	animalRepo *testAnimalRepo
	lifecycle  *testLifecycleRepo
	expenses   *testExpenseRepo
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{
		animalRepo: &testAnimalRepo{},
		lifecycle:  newTestLifecycleRepo(),
		expenses:   &testExpenseRepo{},
	}
	f.svc = NewService(
		animals.NewService(f.animalRepo),
		f.lifecycle,
		expenses.NewService(f.expenses),
	)
	return f
}

func (f *fixture) addAnimal(a animals.Animal) {
	f.animalRepo.items = append(f.animalRepo.items, a)
}

func day(y, m, d int) dates.Date {
	return dates.Date{Year: y, Month: time.Month(m), Day: d}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuild_UnknownKind(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Build(context.Background(), Kind("nope"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestFarmSummary(t *testing.T) {
	f := newFixture()
	f.addAnimal(animals.Animal{ID: "a1", Name: "Ganga", Species: animals.SpeciesCow, Status: animals.StatusPregnant})
	f.addAnimal(animals.Animal{ID: "a2", Name: "Lali", Species: animals.SpeciesCow, Status: animals.StatusActive})
	f.addAnimal(animals.Animal{ID: "a3", Name: "Mani", Species: animals.SpeciesCow, Status: animals.StatusSick})
	f.addAnimal(animals.Animal{ID: "a4", Name: "Rani", Species: animals.SpeciesBuffalo, Status: animals.StatusPregnant})
	f.addAnimal(animals.Animal{ID: "a5", Name: "Shera", Species: animals.SpeciesBuffalo, Status: animals.StatusActive})

	_ = f.lifecycle.AppendInsemination(context.Background(), lifecycle.InseminationRecord{ID: "i1", AnimalID: "a1", Date: day(2024, 1, 10)})
	_ = f.lifecycle.AppendInsemination(context.Background(), lifecycle.InseminationRecord{ID: "i2", AnimalID: "a1", Date: day(2024, 2, 10)})
	_ = f.lifecycle.AppendInsemination(context.Background(), lifecycle.InseminationRecord{ID: "i3", AnimalID: "a4", Date: day(2024, 2, 12)})
	_ = f.lifecycle.AppendCalving(context.Background(), lifecycle.CalvingRecord{ID: "c1", AnimalID: "a2", Date: day(2023, 11, 1)})

	rep, err := f.svc.Build(context.Background(), KindFarmSummary)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	sum, ok := rep.(FarmSummaryReport)
	if !ok {
		t.Fatalf("unexpected payload type %T", rep)
	}

	if sum.TotalAnimals != 5 || sum.Cows != 3 || sum.Buffalo != 2 {
		t.Fatalf("unexpected herd counts: %+v", sum)
	}
	if sum.Pregnant != 2 || sum.Sick != 1 {
		t.Fatalf("unexpected status counts: %+v", sum)
	}
	if !almostEqual(sum.PregnancyRate, 40.0) {
		t.Fatalf("expected pregnancy rate 40, got %v", sum.PregnancyRate)
	}
	if sum.TotalInseminations != 3 || !almostEqual(sum.AvgInseminations, 0.6) {
		t.Fatalf("unexpected insemination stats: %+v", sum)
	}
	if sum.TotalCalvings != 1 || !almostEqual(sum.AvgCalvings, 0.2) {
		t.Fatalf("unexpected calving stats: %+v", sum)
	}
}

func TestFarmSummary_EmptyHerd(t *testing.T) {
	f := newFixture()

	rep, err := f.svc.Build(context.Background(), KindFarmSummary)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	sum := rep.(FarmSummaryReport)

	// denominador cero: tasas en 0, nunca NaN
	if sum.PregnancyRate != 0 || sum.AvgInseminations != 0 || sum.AvgCalvings != 0 {
		t.Fatalf("expected zero rates on empty herd, got %+v", sum)
	}
	if math.IsNaN(sum.PregnancyRate) {
		t.Fatal("pregnancy rate is NaN")
	}
}

func TestAllInsemination_FlattenOrder(t *testing.T) {
	f := newFixture()
	f.addAnimal(animals.Animal{ID: "a1", Name: "Ganga", Species: animals.SpeciesCow, Status: animals.StatusActive})
	f.addAnimal(animals.Animal{ID: "a2", Name: "Lali", Species: animals.SpeciesCow, Status: animals.StatusActive})

	ctx := context.Background()
	_ = f.lifecycle.AppendInsemination(ctx, lifecycle.InseminationRecord{ID: "i1", AnimalID: "a2", Date: day(2024, 1, 5)})
	_ = f.lifecycle.AppendInsemination(ctx, lifecycle.InseminationRecord{ID: "i2", AnimalID: "a1", Date: day(2024, 3, 5)})
	_ = f.lifecycle.AppendInsemination(ctx, lifecycle.InseminationRecord{ID: "i3", AnimalID: "a1", Date: day(2024, 2, 5)})

	rep, err := f.svc.Build(ctx, KindAllInsemination)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	ins := rep.(InseminationReport)

	if len(ins.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ins.Rows))
	}
	// orden de animales primero, luego orden de inserción; no se re-ordena por fecha
	want := []string{"Ganga", "Ganga", "Lali"}
	for i, name := range want {
		if ins.Rows[i].AnimalName != name {
			t.Fatalf("row %d: expected %s, got %s", i, name, ins.Rows[i].AnimalName)
		}
	}
	if !ins.Rows[0].Date.Equal(day(2024, 3, 5)) || !ins.Rows[1].Date.Equal(day(2024, 2, 5)) {
		t.Fatalf("rows re-ordered by date: %+v", ins.Rows)
	}
}

func TestExpenseSummary_MergesSources(t *testing.T) {
	f := newFixture()
	f.addAnimal(animals.Animal{ID: "a1", Name: "Ganga", Species: animals.SpeciesCow, Status: animals.StatusActive})

	ctx := context.Background()
	_ = f.lifecycle.AppendDeworming(ctx, lifecycle.DewormingRecord{ID: "d1", AnimalID: "a1", Date: day(2024, 1, 5), Medicine: "albendazol", Cost: 100})
	_ = f.lifecycle.AppendDeworming(ctx, lifecycle.DewormingRecord{ID: "d2", AnimalID: "a1", Date: day(2024, 2, 5), Medicine: "ivermectina"})
	_ = f.lifecycle.AppendSickness(ctx, lifecycle.SicknessRecord{ID: "s1", AnimalID: "a1", Date: day(2024, 3, 5), Condition: "mastitis", Cost: 50})
	f.expenses.items = append(f.expenses.items,
		expenses.Expense{ID: "e1", Date: day(2024, 3, 10), Category: expenses.CategoryFeed, Amount: 30, AnimalID: "a1", Description: "alimento extra"},
		expenses.Expense{ID: "e2", Date: day(2024, 3, 11), Category: expenses.CategoryElectricity, Amount: 999},
	)

	rep, err := f.svc.Build(ctx, KindExpenseSummary)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	exp := rep.(ExpenseReport)

	// d2 no tiene costo y e2 no referencia animal: ambos afuera
	if len(exp.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(exp.Rows), exp.Rows)
	}
	if !almostEqual(exp.Total, 180) {
		t.Fatalf("expected total 180, got %v", exp.Total)
	}

	wantSources := []string{"deworming", "sickness", "ledger"}
	for i, src := range wantSources {
		if exp.Rows[i].Source != src {
			t.Fatalf("row %d: expected source %s, got %s", i, src, exp.Rows[i].Source)
		}
	}
	if exp.Rows[2].AnimalName != "Ganga" {
		t.Fatalf("ledger row did not resolve animal name: %+v", exp.Rows[2])
	}
}

func TestAnimalList_Filters(t *testing.T) {
	f := newFixture()
	due := day(2024, 9, 1)
	f.addAnimal(animals.Animal{ID: "a1", Name: "Ganga", Species: animals.SpeciesCow, Status: animals.StatusPregnant, ExpectedCalvingDate: &due})
	f.addAnimal(animals.Animal{ID: "a2", Name: "Lali", Species: animals.SpeciesCow, Status: animals.StatusActive, CurrentDailyMilk: 12})
	f.addAnimal(animals.Animal{ID: "a3", Name: "Mani", Species: animals.SpeciesBuffalo, Status: animals.StatusDry})

	ctx := context.Background()

	rep, err := f.svc.Build(ctx, KindPregnantCows)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	preg := rep.(AnimalListReport)
	if len(preg.Rows) != 1 || preg.Rows[0].AnimalName != "Ganga" {
		t.Fatalf("unexpected pregnant rows: %+v", preg.Rows)
	}

	rep, err = f.svc.Build(ctx, KindMilkProduction)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	milk := rep.(AnimalListReport)
	if len(milk.Rows) != 1 || milk.Rows[0].AnimalName != "Lali" {
		t.Fatalf("unexpected milk rows: %+v", milk.Rows)
	}

	rep, err = f.svc.Build(ctx, KindCattleList)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	all := rep.(AnimalListReport)
	if len(all.Rows) != 3 {
		t.Fatalf("expected full herd, got %d rows", len(all.Rows))
	}
}
