package payments

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Payment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Payment{}}
}

func (r *testRepo) Create(ctx context.Context, p Payment) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Payment) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByStatus(ctx context.Context, st Status) ([]Payment, error) {
	out := make([]Payment, 0)
	for _, p := range r.byID {
		if st == "" || p.Status == st {
			out = append(out, p)
		}
	}
	return out, nil
}

type testBillRepo struct {
	bills      map[string]Bill // customerID|month
	failUpdate bool
}

func newTestBillRepo() *testBillRepo {
	return &testBillRepo{bills: map[string]Bill{}}
}

func (r *testBillRepo) GetByCustomerMonth(ctx context.Context, customerID, billMonth string) (Bill, error) {
	b, ok := r.bills[customerID+"|"+billMonth]
	if !ok {
		return Bill{}, ErrNotFound
	}
	return b, nil
}

func (r *testBillRepo) Update(ctx context.Context, b Bill) error {
	if r.failUpdate {
		return errors.New("bill store unavailable")
	}
	r.bills[b.CustomerID+"|"+b.BillMonth] = b
	return nil
}

type testSettingsRepo struct {
	val *Settings
}

func (r *testSettingsRepo) Get(ctx context.Context) (Settings, error) {
	if r.val == nil {
		return Settings{}, ErrNotFound
	}
	return *r.val, nil
}

func (r *testSettingsRepo) Put(ctx context.Context, s Settings) error {
	r.val = &s
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Submit_ValidatesBillMonth(t *testing.T) {
	svc := NewService(newTestRepo(), newTestBillRepo(), &testSettingsRepo{}, nil)

	cases := []struct {
		month string
		ok    bool
	}{
		{"2024-03", true},
		{"2024-12", true},
		{"2024-13", false},
		{"2024-00", false},
		{"24-03", false},
		{"2024-3", false},
		{"", false},
	}

	for _, tc := range cases {
		_, err := svc.Submit(context.Background(), SubmitInput{
			CustomerID: "c1", Amount: 100, BillMonth: tc.month,
		})
		if tc.ok && err != nil {
			t.Fatalf("month %q: unexpected error %v", tc.month, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("month %q: expected ErrInvalidInput, got %v", tc.month, err)
		}
	}
}

func TestService_Approve_MarksBillPaid(t *testing.T) {
	repo := newTestRepo()
	bills := newTestBillRepo()
	bills.bills["c1|2024-03"] = Bill{ID: "b1", CustomerID: "c1", BillMonth: "2024-03", Amount: 100, Status: BillUnpaid}

	svc := NewService(repo, bills, &testSettingsRepo{}, nil)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Submit(context.Background(), SubmitInput{CustomerID: "c1", Amount: 100, BillMonth: "2024-03"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	got, err := svc.Approve(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if got.Status != StatusApproved || got.DecidedAt == nil {
		t.Fatalf("expected approved with decided_at, got %+v", got)
	}

	b := bills.bills["c1|2024-03"]
	if b.Status != BillPaid || b.PaidAt == nil {
		t.Fatalf("expected bill paid, got %+v", b)
	}
}

func TestService_Approve_StandsWhenBillUpdateFails(t *testing.T) {
	repo := newTestRepo()
	bills := newTestBillRepo()
	bills.bills["c1|2024-03"] = Bill{ID: "b1", CustomerID: "c1", BillMonth: "2024-03", Amount: 100, Status: BillUnpaid}
	bills.failUpdate = true

	svc := NewService(repo, bills, &testSettingsRepo{}, nil)

	p, _ := svc.Submit(context.Background(), SubmitInput{CustomerID: "c1", Amount: 100, BillMonth: "2024-03"})

	got, err := svc.Approve(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("expected approval to succeed despite bill failure, got %v", err)
	}
	if got.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
	// la aprobación quedó persistida
	if repo.byID[p.ID].Status != StatusApproved {
		t.Fatalf("expected stored payment approved, got %s", repo.byID[p.ID].Status)
	}
	// y la factura sigue sin pagar
	if bills.bills["c1|2024-03"].Status != BillUnpaid {
		t.Fatalf("expected bill still unpaid")
	}
}

func TestService_Decide_IsTerminal(t *testing.T) {
	svc := NewService(newTestRepo(), newTestBillRepo(), &testSettingsRepo{}, nil)
	ctx := context.Background()

	p, _ := svc.Submit(ctx, SubmitInput{CustomerID: "c1", Amount: 100, BillMonth: "2024-03"})
	if _, err := svc.Approve(ctx, p.ID); err != nil {
		t.Fatalf("Approve error: %v", err)
	}

	if _, err := svc.Approve(ctx, p.ID); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState re-approving, got %v", err)
	}
	if _, err := svc.Reject(ctx, p.ID, "duplicado"); !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState rejecting an approved payment, got %v", err)
	}
}

func TestService_Reject_RequiresReason(t *testing.T) {
	svc := NewService(newTestRepo(), newTestBillRepo(), &testSettingsRepo{}, nil)
	ctx := context.Background()

	p, _ := svc.Submit(ctx, SubmitInput{CustomerID: "c1", Amount: 100, BillMonth: "2024-03"})

	if _, err := svc.Reject(ctx, p.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without reason, got %v", err)
	}

	got, err := svc.Reject(ctx, p.ID, "comprobante ilegible")
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if got.Status != StatusRejected || got.RejectionReason != "comprobante ilegible" {
		t.Fatalf("unexpected rejected payment: %+v", got)
	}
}

func TestService_Settings_RoundTrip(t *testing.T) {
	svc := NewService(newTestRepo(), newTestBillRepo(), &testSettingsRepo{}, nil)
	ctx := context.Background()

	if _, err := svc.GetSettings(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first Put, got %v", err)
	}

	if _, err := svc.PutSettings(ctx, SettingsInput{UPIID: "dairy@upi", PayeeName: "Dairy"}); err != nil {
		t.Fatalf("PutSettings error: %v", err)
	}

	got, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings error: %v", err)
	}
	if got.UPIID != "dairy@upi" || got.PayeeName != "Dairy" {
		t.Fatalf("unexpected settings: %+v", got)
	}
}
