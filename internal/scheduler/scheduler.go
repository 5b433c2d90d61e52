package scheduler

import (
	"context"
	"log/slog"
	"time"

	"livelaunch/internal/domain"
)

// Poller runs one poll cycle.
type Poller interface {
	Poll(ctx context.Context) (*domain.CycleStats, error)
}

type Scheduler struct {
	poller   Poller
	interval time.Duration
	deadline time.Duration
	logger   *slog.Logger
}

// NewScheduler returns a scheduler that polls every interval and gives each
// cycle at most deadline to finish.
func NewScheduler(poller Poller, interval, deadline time.Duration, logger *slog.Logger) *Scheduler {
	if deadline <= 0 || deadline > interval {
		deadline = interval
	}
	return &Scheduler{
		poller:   poller,
		interval: interval,
		deadline: deadline,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "deadline", s.deadline)

	s.runPoll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runPoll(ctx)
		}
	}
}

func (s *Scheduler) runPoll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	if _, err := s.poller.Poll(pollCtx); err != nil {
		s.logger.Error("poll failed", "error", err)
	}
}
