package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository"
)

type EventDateRepository interface {
	Create(ctx context.Context, day time.Time) (domain.EventDate, error)
	FindByDate(ctx context.Context, day time.Time) (domain.EventDate, error)
	AllByEventID(ctx context.Context, eventID uint) ([]domain.EventDate, error)
	UpcomingByEventID(ctx context.Context, eventID uint, from time.Time) ([]domain.EventDate, error)
}

// EventDateService maintains the shared pool of calendar days. A given day is
// stored once and shared by every event celebrated on it.
type EventDateService struct {
	repo EventDateRepository
}

func NewEventDateService(repo EventDateRepository) *EventDateService {
	return &EventDateService{
		repo: repo,
	}
}

// FindOrCreateDates resolves each day against the pool, inserting the ones
// that are new. Duplicate days in the input collapse to one row. A nil or
// empty input yields an empty result.
func (s *EventDateService) FindOrCreateDates(ctx context.Context, days []time.Time) ([]domain.EventDate, error) {
	dates := make([]domain.EventDate, 0, len(days))
	seen := make(map[time.Time]bool, len(days))

	for _, day := range days {
		day = truncateToDay(day)
		if seen[day] {
			continue
		}
		seen[day] = true

		date, err := s.repo.FindByDate(ctx, day)
		if err == nil {
			dates = append(dates, date)
			continue
		}
		if !errors.Is(err, repository.ErrEventDateNotFound) {
			return nil, fmt.Errorf("s.repo.FindByDate -> %w", err)
		}

		date, err = s.repo.Create(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("s.repo.Create -> %w", err)
		}

		dates = append(dates, date)
	}

	return dates, nil
}

// DatesOfEvent lists every day of an event in ascending order.
func (s *EventDateService) DatesOfEvent(ctx context.Context, eventID uint) ([]domain.EventDate, error) {
	dates, err := s.repo.AllByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.AllByEventID -> %w", err)
	}

	return dates, nil
}

// UpcomingDatesOfEvent lists the days of an event from today on, ascending.
func (s *EventDateService) UpcomingDatesOfEvent(ctx context.Context, eventID uint) ([]domain.EventDate, error) {
	dates, err := s.repo.UpcomingByEventID(ctx, eventID, truncateToDay(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("s.repo.UpcomingByEventID -> %w", err)
	}

	return dates, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
