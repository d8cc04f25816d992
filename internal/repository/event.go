package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Event, error)
	FindOutOfTime(ctx context.Context) ([]dao.Event, error)
	FindByInTimeAndStatus(ctx context.Context, inTime bool, status string) ([]dao.Event, error)
	FindByNameContaining(ctx context.Context, fragment string) ([]dao.Event, error)
	FindByUserEmail(ctx context.Context, email string) ([]dao.Event, error)
	FindFavoritedByUser(ctx context.Context, userID uint) ([]dao.Event, error)
	SearchPublished(ctx context.Context, search dao.EventSearch) ([]dao.Event, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountOutOfTime(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Discard(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	ExpireFinishedEvents(ctx context.Context, today time.Time) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

// Create stores a new event. The relation IDs and the date pool rows must be
// resolved by the caller beforehand.
func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error) {
	found, err := r.dao.FindByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

// FindOutOfTime lists expired, non-discarded events.
func (r *EventRepository) FindOutOfTime(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindOutOfTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOutOfTime -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindByNameContaining(ctx context.Context, fragment string) ([]domain.Event, error) {
	found, err := r.dao.FindByNameContaining(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByNameContaining -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindByInTimeAndStatus(ctx context.Context, inTime bool, status domain.StatusType) ([]domain.Event, error) {
	found, err := r.dao.FindByInTimeAndStatus(ctx, inTime, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByInTimeAndStatus -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindByUserEmail(ctx context.Context, email string) ([]domain.Event, error) {
	found, err := r.dao.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserEmail -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindFavoritedByUser(ctx context.Context, userID uint) ([]domain.Event, error) {
	found, err := r.dao.FindFavoritedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindFavoritedByUser -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) SearchPublished(ctx context.Context, filters domain.SearchFilters) ([]domain.Event, error) {
	found, err := r.dao.SearchPublished(ctx, dao.EventSearch{
		ProvinceName:     filters.ProvinceName,
		Date:             filters.Date,
		ThemeName:        filters.ThemeName,
		MunicipalityName: filters.MunicipalityName,
		MaxPrice:         filters.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.SearchPublished -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) CountByStatus(ctx context.Context, status domain.StatusType) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) CountOutOfTime(ctx context.Context) (int64, error) {
	count, err := r.dao.CountOutOfTime(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountOutOfTime -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status domain.StatusType) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

// Discard marks the event discarded and removes its bookmarks atomically.
func (r *EventRepository) Discard(ctx context.Context, id uint) error {
	if err := r.dao.Discard(ctx, id, string(domain.StatusDiscarded)); err != nil {
		return fmt.Errorf("r.dao.Discard -> %w", err)
	}

	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) ExpireFinishedEvents(ctx context.Context, today time.Time) (int64, error) {
	expired, err := r.dao.ExpireFinishedEvents(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("r.dao.ExpireFinishedEvents -> %w", err)
	}

	return expired, nil
}

func (r *EventRepository) domainToDao(event domain.Event) dao.Event {
	dates := make([]dao.EventDate, 0, len(event.Dates))
	for _, date := range event.Dates {
		dates = append(dates, dao.EventDate{ID: date.ID, FullDate: date.FullDate})
	}

	return dao.Event{
		ID:             event.ID,
		Name:           event.Name,
		Summary:        event.Summary,
		Description:    event.Description,
		PlaceName:      event.PlaceName,
		Address:        event.Address,
		Latitude:       event.Latitude,
		Longitude:      event.Longitude,
		Image:          event.Image,
		InfoURL:        event.InfoURL,
		IsFree:         event.IsFree,
		Price:          event.Price,
		InTime:         event.InTime,
		Status:         string(event.Status),
		MunicipalityID: event.MunicipalityID,
		ThemeID:        event.ThemeID,
		UserID:         event.UserID,
		Dates:          dates,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	dates := make([]domain.EventDate, 0, len(e.Dates))
	for _, date := range e.Dates {
		dates = append(dates, domain.EventDate{ID: date.ID, FullDate: date.FullDate})
	}

	return domain.Event{
		ID:               e.ID,
		Name:             e.Name,
		Summary:          e.Summary,
		Description:      e.Description,
		PlaceName:        e.PlaceName,
		Address:          e.Address,
		Latitude:         e.Latitude,
		Longitude:        e.Longitude,
		Image:            e.Image,
		InfoURL:          e.InfoURL,
		IsFree:           e.IsFree,
		Price:            e.Price,
		InTime:           e.InTime,
		Status:           domain.StatusType(e.Status),
		MunicipalityID:   e.MunicipalityID,
		MunicipalityName: e.Municipality.Name,
		ProvinceName:     e.Municipality.Province.Name,
		ThemeID:          e.ThemeID,
		ThemeName:        e.Theme.Name,
		UserID:           e.UserID,
		UserEmail:        e.User.Email,
		Dates:            dates,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomainSlice(found []dao.Event) []domain.Event {
	events := make([]domain.Event, 0, len(found))
	for _, event := range found {
		events = append(events, r.daoToDomain(event))
	}

	return events
}
