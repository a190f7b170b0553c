package reviews

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byID  map[string]Review
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Review{}}
}

func (r *testRepo) Create(ctx context.Context, rv Review) error {
	if rv.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[rv.ID] = rv
	r.order = append(r.order, rv.ID)
	return nil
}

func (r *testRepo) Update(ctx context.Context, rv Review) error {
	if _, ok := r.byID[rv.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rv.ID] = rv
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	return rv, nil
}

func (r *testRepo) List(ctx context.Context) ([]Review, error) {
	out := make([]Review, 0)
	for _, id := range r.order {
		if rv, ok := r.byID[id]; ok {
			out = append(out, rv)
		}
	}
	return out, nil
}

func submit(t *testing.T, svc *Service) Review {
	t.Helper()
	rv, err := svc.Submit(context.Background(), SubmitInput{
		CustomerName: "Asha",
		Rating:       5,
		Text:         "buena leche",
	})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	return rv
}

func TestService_Submit_StartsPending(t *testing.T) {
	svc := NewService(newTestRepo())

	rv := submit(t, svc)
	if rv.Status != StatusPending || rv.IsApproved() {
		t.Fatalf("expected pending, got %+v", rv)
	}
}

func TestService_Submit_RatingBounds(t *testing.T) {
	svc := NewService(newTestRepo())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), SubmitInput{CustomerName: "Asha", Rating: rating})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: expected ErrInvalidInput, got %v", rating, err)
		}
	}
}

func TestService_FeaturePending_IsBadState(t *testing.T) {
	svc := NewService(newTestRepo())
	rv := submit(t, svc)

	if _, err := svc.SetFeatured(context.Background(), rv.ID, true); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState featuring a pending review, got %v", err)
	}
}

func TestService_FeatureApproved_Toggles(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()
	rv := submit(t, svc)

	if _, err := svc.Approve(ctx, rv.ID); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	got, err := svc.SetFeatured(ctx, rv.ID, true)
	if err != nil {
		t.Fatalf("SetFeatured error: %v", err)
	}
	if !got.IsFeatured {
		t.Fatalf("expected featured")
	}
	got, err = svc.SetFeatured(ctx, rv.ID, false)
	if err != nil {
		t.Fatalf("SetFeatured(false) error: %v", err)
	}
	if got.IsFeatured {
		t.Fatalf("expected unfeatured")
	}
}

func TestService_RejectPending_OK_AndIdempotent(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()
	rv := submit(t, svc)

	got, err := svc.Reject(ctx, rv.ID)
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if got.Status != StatusRejected || got.ModeratedAt == nil {
		t.Fatalf("expected rejected with moderated_at, got %+v", got)
	}

	// repetir el rechazo no es error
	if _, err := svc.Reject(ctx, rv.ID); err != nil {
		t.Fatalf("idempotent Reject error: %v", err)
	}
}

func TestService_RejectApproved_IsBadState(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()
	rv := submit(t, svc)

	if _, err := svc.Approve(ctx, rv.ID); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if _, err := svc.Reject(ctx, rv.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState rejecting an approved review, got %v", err)
	}
}

func TestService_Delete_RequiresApproved(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()
	rv := submit(t, svc)

	if err := svc.Delete(ctx, rv.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState deleting a pending review, got %v", err)
	}

	if _, err := svc.Approve(ctx, rv.ID); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if err := svc.Delete(ctx, rv.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.byID[rv.ID]; ok {
		t.Fatalf("expected review removed")
	}
}

func TestService_ListApproved_FiltersModeration(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	r1 := submit(t, svc)
	_ = submit(t, svc) // queda pending
	r3 := submit(t, svc)

	_, _ = svc.Approve(ctx, r1.ID)
	_, _ = svc.Reject(ctx, r3.ID)

	got, err := svc.ListApproved(ctx)
	if err != nil {
		t.Fatalf("ListApproved error: %v", err)
	}
	if len(got) != 1 || got[0].ID != r1.ID {
		t.Fatalf("expected only approved review, got %+v", got)
	}
}
