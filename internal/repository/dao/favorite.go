package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFavoriteExists   = errors.New("favorite already exists")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type Favorite struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint `gorm:"not null;uniqueIndex:uni_favorites_user_event"`
	EventID uint `gorm:"not null;uniqueIndex:uni_favorites_user_event"`

	User  User
	Event Event

	FavoriteDate time.Time `gorm:"not null"`
}

type FavoriteDAO struct {
	db *gorm.DB
}

func NewFavoriteDAO(db *gorm.DB) *FavoriteDAO {
	return &FavoriteDAO{
		db: db,
	}
}

func (d *FavoriteDAO) Insert(ctx context.Context, favorite Favorite) (Favorite, error) {
	result := d.db.WithContext(ctx).Create(&favorite)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_favorites_user_event"`) {
			return Favorite{}, ErrFavoriteExists
		}

		return Favorite{}, result.Error
	}

	return favorite, nil
}

func (d *FavoriteDAO) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (Favorite, error) {
	var favorite Favorite

	result := d.db.WithContext(ctx).
		First(&favorite, "user_id = ? AND event_id = ?", userID, eventID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Favorite{}, ErrFavoriteNotFound
		}

		return Favorite{}, result.Error
	}

	return favorite, nil
}

func (d *FavoriteDAO) ListByUserID(ctx context.Context, userID uint) ([]Favorite, error) {
	var favorites []Favorite

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Event.Theme").
		Preload("Event.Municipality").
		Where("user_id = ?", userID).
		Order("favorite_date DESC").
		Find(&favorites)
	if result.Error != nil {
		return nil, result.Error
	}

	return favorites, nil
}

func (d *FavoriteDAO) DeleteByID(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Favorite{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

func (d *FavoriteDAO) DeleteByEventID(ctx context.Context, eventID uint) error {
	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&Favorite{})

	return result.Error
}

func (d *FavoriteDAO) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Favorite{}).Where("event_id = ?", eventID).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
