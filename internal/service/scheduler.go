package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type ExpiryEventRepository interface {
	ExpireFinishedEvents(ctx context.Context, today time.Time) (int64, error)
}

// ExpiryScheduler runs the daily sweep that clears the in-time flag on events
// whose last occurrence has passed.
type ExpiryScheduler struct {
	repo   ExpiryEventRepository
	hour   int
	logger *zap.Logger
}

func NewExpiryScheduler(repo ExpiryEventRepository, hour int, logger *zap.Logger) *ExpiryScheduler {
	return &ExpiryScheduler{
		repo:   repo,
		hour:   hour,
		logger: logger,
	}
}

// Start launches the sweep loop in the background. The loop fires once a day
// at the configured hour and stops when ctx is canceled.
func (s *ExpiryScheduler) Start(ctx context.Context) {
	go func() {
		s.logger.Info("expiry scheduler started", zap.Int("hour", s.hour))

		for {
			timer := time.NewTimer(time.Until(nextRunAfter(time.Now(), s.hour)))

			select {
			case <-ctx.Done():
				timer.Stop()
				s.logger.Info("expiry scheduler stopped")
				return
			case <-timer.C:
				if err := s.RunOnce(ctx); err != nil {
					s.logger.Error("expiry sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// RunOnce performs a single sweep for the current day.
func (s *ExpiryScheduler) RunOnce(ctx context.Context) error {
	expired, err := s.repo.ExpireFinishedEvents(ctx, truncateToDay(time.Now()))
	if err != nil {
		return fmt.Errorf("s.repo.ExpireFinishedEvents -> %w", err)
	}

	s.logger.Info("expiry sweep finished", zap.Int64("expired", expired))

	return nil
}

// nextRunAfter returns the next occurrence of the given hour strictly after
// now.
func nextRunAfter(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
