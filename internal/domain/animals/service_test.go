package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"dairy-admin/internal/platform/dates"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID  map[string]Animal
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, id := range r.order {
		a := r.byID[id]
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

// -------------------------
// Tests
// -------------------------

func TestService_Create_Defaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.Create(context.Background(), CreateInput{
		Name:    "  Ganga ",
		Species: "cow",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if a.Name != "Ganga" {
		t.Fatalf("expected trimmed name, got %q", a.Name)
	}
	if a.Status != StatusActive {
		t.Fatalf("expected status active, got %s", a.Status)
	}
	if a.CreatedAt != now || a.UpdatedAt != now {
		t.Fatalf("expected CreatedAt/UpdatedAt to be now")
	}
}

func TestService_Create_RejectsUnknownSpecies(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), CreateInput{Name: "X", Species: "goat"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_ConfirmPregnancy_SetsDerivedFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	a, _ := svc.Create(context.Background(), CreateInput{Name: "Ganga", Species: "cow"})

	expected := dates.Date{Year: 2024, Month: 12, Day: 1}
	got, err := svc.ConfirmPregnancy(context.Background(), a.ID, expected)
	if err != nil {
		t.Fatalf("ConfirmPregnancy returned error: %v", err)
	}
	if got.Status != StatusPregnant || !got.PregnancyStatus {
		t.Fatalf("expected pregnant status, got %s / %v", got.Status, got.PregnancyStatus)
	}
	if got.ExpectedCalvingDate == nil || !got.ExpectedCalvingDate.Equal(expected) {
		t.Fatalf("expected calving date %s, got %v", expected, got.ExpectedCalvingDate)
	}
}

func TestService_MarkDry_AppendsReasonToNotes(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, _ := svc.Create(context.Background(), CreateInput{
		Name: "Ganga", Species: "cow", HealthNotes: "vacunada",
	})

	got, err := svc.MarkDry(context.Background(), a.ID, "baja producción")
	if err != nil {
		t.Fatalf("MarkDry returned error: %v", err)
	}
	if got.Status != StatusDry {
		t.Fatalf("expected dry, got %s", got.Status)
	}
	if got.DryStartDate == nil || got.DryStartDate.String() != "2024-03-05" {
		t.Fatalf("expected dry start 2024-03-05, got %v", got.DryStartDate)
	}
	want := "vacunada\n[dry 2024-03-05] baja producción"
	if got.HealthNotes != want {
		t.Fatalf("expected notes %q, got %q", want, got.HealthNotes)
	}
}

func TestService_MarkRecovered_Rules(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	a, _ := svc.Create(context.Background(), CreateInput{Name: "Ganga", Species: "cow"})

	// active -> idempotente, sin error
	got, err := svc.MarkRecovered(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("MarkRecovered on active returned error: %v", err)
	}
	if got.Status != StatusActive {
		t.Fatalf("expected active, got %s", got.Status)
	}

	// sick -> active
	if _, err := svc.MarkSick(context.Background(), a.ID); err != nil {
		t.Fatalf("MarkSick error: %v", err)
	}
	got, err = svc.MarkRecovered(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("MarkRecovered from sick returned error: %v", err)
	}
	if got.Status != StatusActive {
		t.Fatalf("expected active after recovery, got %s", got.Status)
	}

	// dry -> active, y limpia dry_start_date
	if _, err := svc.MarkDry(context.Background(), a.ID, ""); err != nil {
		t.Fatalf("MarkDry error: %v", err)
	}
	got, err = svc.MarkRecovered(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("MarkRecovered from dry returned error: %v", err)
	}
	if got.DryStartDate != nil {
		t.Fatalf("expected dry start cleared, got %v", got.DryStartDate)
	}

	// pregnant -> ErrBadState
	if _, err := svc.ConfirmPregnancy(context.Background(), a.ID, dates.Date{Year: 2024, Month: 12, Day: 1}); err != nil {
		t.Fatalf("ConfirmPregnancy error: %v", err)
	}
	if _, err := svc.MarkRecovered(context.Background(), a.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState recovering a pregnant animal, got %v", err)
	}
}

func TestService_UpdateProfile_EmptyDateClearsField(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	birth := "2021-06-10"
	a, _ := svc.Create(context.Background(), CreateInput{Name: "Ganga", Species: "cow"})
	if _, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{BirthDate: &birth}); err != nil {
		t.Fatalf("UpdateProfile set error: %v", err)
	}

	empty := ""
	got, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{BirthDate: &empty})
	if err != nil {
		t.Fatalf("UpdateProfile clear error: %v", err)
	}
	if got.BirthDate != nil {
		t.Fatalf("expected birth date cleared, got %v", got.BirthDate)
	}
}

func TestService_Counts(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	c1, _ := svc.Create(ctx, CreateInput{Name: "A", Species: "cow"})
	_, _ = svc.Create(ctx, CreateInput{Name: "B", Species: "cow"})
	b1, _ := svc.Create(ctx, CreateInput{Name: "C", Species: "buffalo"})

	_, _ = svc.ConfirmPregnancy(ctx, c1.ID, dates.Date{Year: 2024, Month: 12, Day: 1})
	_, _ = svc.MarkSick(ctx, b1.ID)

	counts, err := svc.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts error: %v", err)
	}
	if counts.Total != 3 || counts.Cows != 2 || counts.Buffalo != 1 {
		t.Fatalf("unexpected species counts: %+v", counts)
	}
	if counts.Pregnant != 1 || counts.Sick != 1 || counts.Active != 1 {
		t.Fatalf("unexpected status counts: %+v", counts)
	}
}
