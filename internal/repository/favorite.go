package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository/dao"
)

var (
	ErrFavoriteExists   = dao.ErrFavoriteExists
	ErrFavoriteNotFound = dao.ErrFavoriteNotFound
)

type FavoriteDAO interface {
	Insert(ctx context.Context, favorite dao.Favorite) (dao.Favorite, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (dao.Favorite, error)
	ListByUserID(ctx context.Context, userID uint) ([]dao.Favorite, error)
	DeleteByID(ctx context.Context, id uint) error
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
}

type FavoriteRepository struct {
	dao FavoriteDAO
}

func NewFavoriteRepository(dao FavoriteDAO) *FavoriteRepository {
	return &FavoriteRepository{
		dao: dao,
	}
}

func (r *FavoriteRepository) Create(ctx context.Context, userID, eventID uint) (domain.Favorite, error) {
	created, err := r.dao.Insert(ctx, dao.Favorite{
		UserID:       userID,
		EventID:      eventID,
		FavoriteDate: time.Now(),
	})
	if err != nil {
		return domain.Favorite{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FavoriteRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (domain.Favorite, error) {
	found, err := r.dao.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return domain.Favorite{}, fmt.Errorf("r.dao.FindByUserAndEvent -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *FavoriteRepository) ListByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	found, err := r.dao.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUserID -> %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(found))
	for _, favorite := range found {
		favorites = append(favorites, r.daoToDomain(favorite))
	}

	return favorites, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteByID -> %w", err)
	}

	return nil
}

func (r *FavoriteRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByEventID -> %w", err)
	}

	return count, nil
}

func (r *FavoriteRepository) daoToDomain(f dao.Favorite) domain.Favorite {
	return domain.Favorite{
		ID:                    f.ID,
		FavoriteDate:          f.FavoriteDate,
		UserEmail:             f.User.Email,
		EventID:               f.EventID,
		EventName:             f.Event.Name,
		EventImage:            f.Event.Image,
		EventPrice:            f.Event.Price,
		EventThemeName:        f.Event.Theme.Name,
		EventMunicipalityName: f.Event.Municipality.Name,
		EventInTime:           f.Event.InTime,
		EventStatus:           domain.StatusType(f.Event.Status),
	}
}
