package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/pkg/checks"
	"github.com/dainadb/improplan/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrMunicipalityNotFound = repository.ErrMunicipalityNotFound
	ErrThemeNotFound        = repository.ErrThemeNotFound
	ErrInvalidEvent         = errors.New("invalid event data")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error)
	FindOutOfTime(ctx context.Context) ([]domain.Event, error)
	FindByInTimeAndStatus(ctx context.Context, inTime bool, status domain.StatusType) ([]domain.Event, error)
	FindByNameContaining(ctx context.Context, fragment string) ([]domain.Event, error)
	FindByUserEmail(ctx context.Context, email string) ([]domain.Event, error)
	FindFavoritedByUser(ctx context.Context, userID uint) ([]domain.Event, error)
	SearchPublished(ctx context.Context, filters domain.SearchFilters) ([]domain.Event, error)
	CountByStatus(ctx context.Context, status domain.StatusType) (int64, error)
	CountOutOfTime(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status domain.StatusType) error
	Discard(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type EventRefDataRepository interface {
	FindMunicipalityByName(ctx context.Context, name string) (domain.Municipality, error)
	FindThemeByName(ctx context.Context, name string) (domain.Theme, error)
}

type DateResolver interface {
	FindOrCreateDates(ctx context.Context, days []time.Time) ([]domain.EventDate, error)
}

type EventService struct {
	repo    EventRepository
	refData EventRefDataRepository
	dates   DateResolver
}

func NewEventService(repo EventRepository, refData EventRefDataRepository, dates DateResolver) *EventService {
	return &EventService{
		repo:    repo,
		refData: refData,
		dates:   dates,
	}
}

// Create stores a draft as a new event. New events always start pending and
// in time, whatever the caller claims.
func (s *EventService) Create(ctx context.Context, userID uint, draft domain.EventDraft) (domain.Event, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Event{}, err
	}

	event, err := s.resolveDraft(ctx, draft)
	if err != nil {
		return domain.Event{}, err
	}

	event.UserID = userID
	event.Status = domain.StatusPending
	event.InTime = true

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Update rewrites the editable fields of an event. The draft goes through the
// same validation as on create, so every date must still be in the future; the
// creator and the review status never change here, and the in-time flag is
// recomputed from the new dates.
func (s *EventService) Update(ctx context.Context, id uint, draft domain.EventDraft) (domain.Event, error) {
	if err := validateDraft(draft); err != nil {
		return domain.Event{}, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event, err := s.resolveDraft(ctx, draft)
	if err != nil {
		return domain.Event{}, err
	}

	event.ID = id
	event.InTime = anyDateFrom(event.Dates, truncateToDay(time.Now()))

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Publish makes an event visible to visitors, whatever its previous status.
func (s *EventService) Publish(ctx context.Context, id uint) error {
	if err := s.repo.UpdateStatus(ctx, id, domain.StatusPublished); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// SoftDelete discards an event and drops every bookmark pointing at it.
func (s *EventService) SoftDelete(ctx context.Context, id uint) error {
	if err := s.repo.Discard(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Discard -> %w", err)
	}

	return nil
}

// HardDelete removes a previously discarded event for good. Events in any
// other status are refused.
func (s *EventService) HardDelete(ctx context.Context, id uint) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.Status != domain.StatusDiscarded {
		return fmt.Errorf("%w: only discarded events can be deleted", ErrInvalidEvent)
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *EventService) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListAll(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error) {
	events, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStatus -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListInTimeByStatus(ctx context.Context, status domain.StatusType) ([]domain.Event, error) {
	events, err := s.repo.FindByInTimeAndStatus(ctx, true, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByInTimeAndStatus -> %w", err)
	}

	return events, nil
}

// ListOutOfTime lists expired events still awaiting an admin decision;
// discarded ones are left out.
func (s *EventService) ListOutOfTime(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindOutOfTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOutOfTime -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListByUserEmail(ctx context.Context, email string) ([]domain.Event, error) {
	events, err := s.repo.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserEmail -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListFavoritedByUser(ctx context.Context, userID uint) ([]domain.Event, error) {
	events, err := s.repo.FindFavoritedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindFavoritedByUser -> %w", err)
	}

	return events, nil
}

// Search runs the visitor-facing search over published, in-time events.
// Province and the exact day are mandatory; the event must occur on that day.
func (s *EventService) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Event, error) {
	if strings.TrimSpace(filters.ProvinceName) == "" {
		return nil, fmt.Errorf("%w: province is required", ErrInvalidEvent)
	}
	if filters.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}
	filters.Date = truncateToDay(filters.Date)

	events, err := s.repo.SearchPublished(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SearchPublished -> %w", err)
	}

	return events, nil
}

// SearchByName finds events whose name contains the given fragment,
// case-insensitively. Meant for the review console, so status and the in-time
// flag are not filtered.
func (s *EventService) SearchByName(ctx context.Context, fragment string) ([]domain.Event, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, fmt.Errorf("%w: name fragment is required", ErrInvalidEvent)
	}

	events, err := s.repo.FindByNameContaining(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByNameContaining -> %w", err)
	}

	return events, nil
}

func (s *EventService) CountByStatus(ctx context.Context, status domain.StatusType) (int64, error) {
	count, err := s.repo.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountByStatus -> %w", err)
	}

	return count, nil
}

func (s *EventService) CountOutOfTime(ctx context.Context) (int64, error) {
	count, err := s.repo.CountOutOfTime(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountOutOfTime -> %w", err)
	}

	return count, nil
}

// resolveDraft turns the draft's relation names into rows and its days into
// pool dates.
func (s *EventService) resolveDraft(ctx context.Context, draft domain.EventDraft) (domain.Event, error) {
	municipality, err := s.refData.FindMunicipalityByName(ctx, draft.MunicipalityName)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.refData.FindMunicipalityByName -> %w", err)
	}

	theme, err := s.refData.FindThemeByName(ctx, draft.ThemeName)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.refData.FindThemeByName -> %w", err)
	}

	dates, err := s.dates.FindOrCreateDates(ctx, draft.Dates)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.dates.FindOrCreateDates -> %w", err)
	}

	return domain.Event{
		Name:           draft.Name,
		Summary:        draft.Summary,
		Description:    draft.Description,
		PlaceName:      draft.PlaceName,
		Address:        draft.Address,
		Latitude:       draft.Latitude,
		Longitude:      draft.Longitude,
		Image:          draft.Image,
		InfoURL:        draft.InfoURL,
		IsFree:         draft.IsFree,
		Price:          draft.Price,
		MunicipalityID: municipality.ID,
		ThemeID:        theme.ID,
		Dates:          dates,
	}, nil
}

func validateDraft(draft domain.EventDraft) error {
	switch {
	case strings.TrimSpace(draft.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidEvent)
	case strings.TrimSpace(draft.MunicipalityName) == "":
		return fmt.Errorf("%w: municipality is required", ErrInvalidEvent)
	case strings.TrimSpace(draft.ThemeName) == "":
		return fmt.Errorf("%w: theme is required", ErrInvalidEvent)
	case len(draft.Dates) == 0:
		return fmt.Errorf("%w: at least one date is required", ErrInvalidEvent)
	case draft.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidEvent)
	case draft.IsFree && draft.Price > 0:
		return fmt.Errorf("%w: a free event cannot carry a price", ErrInvalidEvent)
	case draft.InfoURL != "" && !checks.IsValidURL(draft.InfoURL):
		return fmt.Errorf("%w: info URL is malformed", ErrInvalidEvent)
	case draft.Image != "" && !checks.IsValidURL(draft.Image):
		return fmt.Errorf("%w: image URL is malformed", ErrInvalidEvent)
	case draft.Latitude < -90 || draft.Latitude > 90:
		return fmt.Errorf("%w: latitude out of range", ErrInvalidEvent)
	case draft.Longitude < -180 || draft.Longitude > 180:
		return fmt.Errorf("%w: longitude out of range", ErrInvalidEvent)
	}

	today := truncateToDay(time.Now())
	for _, d := range draft.Dates {
		if !truncateToDay(d).After(today) {
			return fmt.Errorf("%w: all dates must be in the future", ErrInvalidEvent)
		}
	}

	return nil
}

// anyDateFrom reports whether at least one date falls on or after the given
// day.
func anyDateFrom(dates []domain.EventDate, day time.Time) bool {
	for _, date := range dates {
		if !date.FullDate.Before(day) {
			return true
		}
	}

	return false
}
