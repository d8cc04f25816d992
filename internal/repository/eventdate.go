package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository/dao"
)

var ErrEventDateNotFound = dao.ErrEventDateNotFound

type EventDateDAO interface {
	Insert(ctx context.Context, date dao.EventDate) (dao.EventDate, error)
	FindByDate(ctx context.Context, day time.Time) (dao.EventDate, error)
	AllByEventID(ctx context.Context, eventID uint) ([]dao.EventDate, error)
	UpcomingByEventID(ctx context.Context, eventID uint, from time.Time) ([]dao.EventDate, error)
}

type EventDateRepository struct {
	dao EventDateDAO
}

func NewEventDateRepository(dao EventDateDAO) *EventDateRepository {
	return &EventDateRepository{
		dao: dao,
	}
}

func (r *EventDateRepository) Create(ctx context.Context, day time.Time) (domain.EventDate, error) {
	created, err := r.dao.Insert(ctx, dao.EventDate{FullDate: day})
	if err != nil {
		return domain.EventDate{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDateDaoToDomain(created), nil
}

func (r *EventDateRepository) FindByDate(ctx context.Context, day time.Time) (domain.EventDate, error) {
	found, err := r.dao.FindByDate(ctx, day)
	if err != nil {
		return domain.EventDate{}, fmt.Errorf("r.dao.FindByDate -> %w", err)
	}

	return eventDateDaoToDomain(found), nil
}

func (r *EventDateRepository) AllByEventID(ctx context.Context, eventID uint) ([]domain.EventDate, error) {
	found, err := r.dao.AllByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.AllByEventID -> %w", err)
	}

	return eventDatesDaoToDomain(found), nil
}

func (r *EventDateRepository) UpcomingByEventID(ctx context.Context, eventID uint, from time.Time) ([]domain.EventDate, error) {
	found, err := r.dao.UpcomingByEventID(ctx, eventID, from)
	if err != nil {
		return nil, fmt.Errorf("r.dao.UpcomingByEventID -> %w", err)
	}

	return eventDatesDaoToDomain(found), nil
}

func eventDateDaoToDomain(d dao.EventDate) domain.EventDate {
	return domain.EventDate{
		ID:       d.ID,
		FullDate: d.FullDate,
	}
}

func eventDatesDaoToDomain(found []dao.EventDate) []domain.EventDate {
	dates := make([]domain.EventDate, 0, len(found))
	for _, date := range found {
		dates = append(dates, eventDateDaoToDomain(date))
	}

	return dates
}
