package payments

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

var billMonthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type Service struct {
	repo     Repository
	bills    BillRepository
	settings SettingsRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, bills BillRepository, settings SettingsRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		bills:    bills,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

type SubmitInput struct {
	CustomerID    string
	Amount        float64
	BillMonth     string
	TransactionID string
	Screenshot    string
}

// Submit registra un pago reportado por el cliente, en pending.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Payment, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return Payment{}, ErrInvalidInput
	}
	if in.Amount <= 0 {
		return Payment{}, ErrInvalidInput
	}
	if !billMonthRe.MatchString(strings.TrimSpace(in.BillMonth)) {
		return Payment{}, ErrInvalidInput
	}

	p := Payment{
		ID:            uuid.NewString(),
		CustomerID:    strings.TrimSpace(in.CustomerID),
		Amount:        in.Amount,
		BillMonth:     strings.TrimSpace(in.BillMonth),
		TransactionID: strings.TrimSpace(in.TransactionID),
		Screenshot:    strings.TrimSpace(in.Screenshot),
		Status:        StatusPending,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Payment{}, err
	}
	return p, nil
}

func (s *Service) Pending(ctx context.Context) ([]Payment, error) {
	return s.repo.ListByStatus(ctx, StatusPending)
}

func (s *Service) GetByID(ctx context.Context, id string) (Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Payment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Approve: pending -> approved. Después intenta marcar pagada la factura del
// (cliente, mes); si esa segunda pata falla, la aprobación QUEDA y el fallo
// solo se loguea. El estado de la factura se reconcilia a mano.
func (s *Service) Approve(ctx context.Context, id string) (Payment, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Payment{}, err
	}
	if p.Status != StatusPending {
		return Payment{}, ErrBadState
	}

	now := s.now()
	p.Status = StatusApproved
	p.DecidedAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return Payment{}, err
	}

	if err := s.markBillPaid(ctx, p, now); err != nil {
		s.logger.Warn("payment approved but bill update failed",
			zap.String("payment_id", p.ID),
			zap.String("customer_id", p.CustomerID),
			zap.String("bill_month", p.BillMonth),
			zap.Error(err),
		)
	}

	return p, nil
}

// Reject: pending -> rejected, con motivo obligatorio.
func (s *Service) Reject(ctx context.Context, id, reason string) (Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Payment{}, ErrInvalidInput
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Payment{}, err
	}
	if p.Status != StatusPending {
		return Payment{}, ErrBadState
	}

	now := s.now()
	p.Status = StatusRejected
	p.RejectionReason = reason
	p.DecidedAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return Payment{}, err
	}
	return p, nil
}

func (s *Service) markBillPaid(ctx context.Context, p Payment, now time.Time) error {
	b, err := s.bills.GetByCustomerMonth(ctx, p.CustomerID, p.BillMonth)
	if err != nil {
		return err
	}
	if b.Status == BillPaid {
		return nil
	}
	b.Status = BillPaid
	b.PaidAt = &now
	return s.bills.Update(ctx, b)
}

func (s *Service) GetSettings(ctx context.Context) (Settings, error) {
	return s.settings.Get(ctx)
}

type SettingsInput struct {
	UPIID        string
	PayeeName    string
	Instructions string
}

func (s *Service) PutSettings(ctx context.Context, in SettingsInput) (Settings, error) {
	if strings.TrimSpace(in.UPIID) == "" {
		return Settings{}, ErrInvalidInput
	}

	cfg := Settings{
		UPIID:        strings.TrimSpace(in.UPIID),
		PayeeName:    strings.TrimSpace(in.PayeeName),
		Instructions: strings.TrimSpace(in.Instructions),
		UpdatedAt:    s.now(),
	}

	if err := s.settings.Put(ctx, cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}
