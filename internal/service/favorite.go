package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository"
)

var (
	ErrFavoriteExists   = repository.ErrFavoriteExists
	ErrFavoriteNotFound = repository.ErrFavoriteNotFound
)

type FavoriteRepository interface {
	Create(ctx context.Context, userID, eventID uint) (domain.Favorite, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (domain.Favorite, error)
	ListByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error)
	Delete(ctx context.Context, id uint) error
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
}

type FavoriteEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type FavoriteUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type FavoriteService struct {
	repo   FavoriteRepository
	events FavoriteEventRepository
	users  FavoriteUserRepository
}

func NewFavoriteService(repo FavoriteRepository, events FavoriteEventRepository, users FavoriteUserRepository) *FavoriteService {
	return &FavoriteService{
		repo:   repo,
		events: events,
		users:  users,
	}
}

// Add bookmarks an event for a user. Bookmarking the same event twice comes
// back as ErrFavoriteExists.
func (s *FavoriteService) Add(ctx context.Context, userID, eventID uint) (domain.Favorite, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return domain.Favorite{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	if _, err := s.repo.FindByUserAndEvent(ctx, userID, eventID); err == nil {
		return domain.Favorite{}, ErrFavoriteExists
	} else if !errors.Is(err, repository.ErrFavoriteNotFound) {
		return domain.Favorite{}, fmt.Errorf("s.repo.FindByUserAndEvent -> %w", err)
	}

	favorite, err := s.repo.Create(ctx, userID, eventID)
	if err != nil {
		return domain.Favorite{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return favorite, nil
}

// Remove drops a user's bookmark of an event.
func (s *FavoriteService) Remove(ctx context.Context, userID, eventID uint) error {
	favorite, err := s.repo.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByUserAndEvent -> %w", err)
	}

	if err = s.repo.Delete(ctx, favorite.ID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ListByUser lists a user's bookmarks. The user must exist; an unknown ID
// comes back as ErrUserNotFound.
func (s *FavoriteService) ListByUser(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	favorites, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUserID -> %w", err)
	}

	return favorites, nil
}

func (s *FavoriteService) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return 0, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	count, err := s.repo.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountByEventID -> %w", err)
	}

	return count, nil
}
