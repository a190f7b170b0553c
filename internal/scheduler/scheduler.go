package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"dairy-admin/internal/domain/reminders"
)

// Scheduler corre el barrido diario de recordatorios. El panel ya los
// calcula on-demand; esto deja rastro en los logs aunque nadie abra el panel.
type Scheduler struct {
	cron         *cron.Cron
	remindersSvc *reminders.Service
	schedule     string
	logger       *zap.Logger
}

func New(schedule string, remindersSvc *reminders.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:         cron.New(),
		remindersSvc: remindersSvc,
		schedule:     schedule,
		logger:       logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sweepReminders); err != nil {
		s.logger.Error("failed to schedule reminder sweep", zap.Error(err))
		return
	}
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweepReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items, err := s.remindersSvc.Upcoming(ctx)
	if err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}

	if len(items) == 0 {
		s.logger.Info("reminder sweep: nothing due in window")
		return
	}
	for _, rem := range items {
		s.logger.Info("reminder due",
			zap.String("type", string(rem.Type)),
			zap.String("animal_id", rem.AnimalID),
			zap.String("animal", rem.AnimalName),
			zap.String("due", rem.Due.String()),
			zap.Int("days", rem.Days),
			zap.String("severity", string(rem.Severity)),
		)
	}
}
