package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

const (
	statusPublished = "PUBLISHED"
	statusDiscarded = "DISCARDED"
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Summary     string
	Description string
	PlaceName   string
	Address     string
	Latitude    float64
	Longitude   float64
	Image       string
	InfoURL     string
	IsFree      bool
	Price       float64

	InTime bool   `gorm:"not null;default:true;index"`
	Status string `gorm:"not null;index"`

	MunicipalityID uint `gorm:"not null"`
	ThemeID        uint `gorm:"not null"`
	UserID         uint `gorm:"not null"`

	Municipality Municipality
	Theme        Theme
	User         User

	Dates []EventDate `gorm:"many2many:events_dates;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName avoids the reserved word "events" clashing with triggers in some
// deployments and keeps the historical table name.
func (Event) TableName() string {
	return "app_events"
}

// EventSearch holds the published-search criteria. Nil optional fields impose
// no constraint.
type EventSearch struct {
	ProvinceName     string
	Date             time.Time
	ThemeName        *string
	MunicipalityName *string
	MaxPrice         *float64
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) withRelations(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Preload("Dates", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_dates.full_date ASC")
		}).
		Preload("Municipality.Province").
		Preload("Theme").
		Preload("User")
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return d.FindByID(ctx, event.ID)
}

// Update rewrites the user-editable columns and replaces the date links in a
// single transaction. Creator and status columns are left untouched.
func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Event{}).Where("id = ?", event.ID).Updates(map[string]interface{}{
			"name":            event.Name,
			"summary":         event.Summary,
			"description":     event.Description,
			"place_name":      event.PlaceName,
			"address":         event.Address,
			"latitude":        event.Latitude,
			"longitude":       event.Longitude,
			"image":           event.Image,
			"info_url":        event.InfoURL,
			"is_free":         event.IsFree,
			"price":           event.Price,
			"in_time":         event.InTime,
			"municipality_id": event.MunicipalityID,
			"theme_id":        event.ThemeID,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return tx.Model(&Event{ID: event.ID}).Association("Dates").Replace(event.Dates)
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.withRelations(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.withRelations(ctx).Order("app_events.id ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByStatus(ctx context.Context, status string) ([]Event, error) {
	var events []Event

	result := d.withRelations(ctx).
		Where("status = ?", status).
		Order("app_events.id ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByInTimeAndStatus(ctx context.Context, inTime bool, status string) ([]Event, error) {
	var events []Event

	result := d.withRelations(ctx).
		Where("in_time = ? AND status = ?", inTime, status).
		Order("app_events.id ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// FindOutOfTime returns events whose dates have all passed, discarded ones
// excluded.
func (d *EventDAO) FindOutOfTime(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.withRelations(ctx).
		Where("in_time = ? AND status <> ?", false, statusDiscarded).
		Order("app_events.id ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// FindByNameContaining matches event names case-insensitively on a fragment.
func (d *EventDAO) FindByNameContaining(ctx context.Context, fragment string) ([]Event, error) {
	var events []Event

	result := d.withRelations(ctx).
		Where("app_events.name ILIKE ?", "%"+fragment+"%").
		Order("app_events.id ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByUserEmail(ctx context.Context, email string) ([]Event, error) {
	var events []Event

	result := d.withRelations(ctx).
		Joins("JOIN users ON users.id = app_events.user_id").
		Where("users.email = ?", email).
		Order("app_events.id ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// FindFavoritedByUser returns the published events a user has bookmarked.
func (d *EventDAO) FindFavoritedByUser(ctx context.Context, userID uint) ([]Event, error) {
	var events []Event

	result := d.withRelations(ctx).
		Joins("JOIN favorites ON favorites.event_id = app_events.id").
		Where("favorites.user_id = ?", userID).
		Where("app_events.status = ?", statusPublished).
		Order("app_events.id ASC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// SearchPublished runs the visitor-facing search. Province and the exact day
// are always applied; the remaining filters only when present.
func (d *EventDAO) SearchPublished(ctx context.Context, search EventSearch) ([]Event, error) {
	query := d.withRelations(ctx).
		Distinct("app_events.*").
		Joins("JOIN events_dates ON events_dates.event_id = app_events.id").
		Joins("JOIN event_dates ON event_dates.id = events_dates.event_date_id").
		Joins("JOIN municipalities ON municipalities.id = app_events.municipality_id").
		Joins("JOIN provinces ON provinces.id = municipalities.province_id").
		Joins("JOIN themes ON themes.id = app_events.theme_id").
		Where("app_events.status = ?", statusPublished).
		Where("app_events.in_time = ?", true).
		Where("LOWER(provinces.name) = LOWER(?)", search.ProvinceName).
		Where("event_dates.full_date = ?", search.Date)

	if search.ThemeName != nil {
		query = query.Where("LOWER(themes.name) = LOWER(?)", *search.ThemeName)
	}
	if search.MunicipalityName != nil {
		query = query.Where("LOWER(municipalities.name) = LOWER(?)", *search.MunicipalityName)
	}
	if search.MaxPrice != nil {
		query = query.Where("app_events.price <= ?", *search.MaxPrice)
	}

	var events []Event

	result := query.Order("app_events.id ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountOutOfTime(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("in_time = ? AND status <> ?", false, statusDiscarded).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Discard flips the event to the given status and drops every bookmark
// pointing at it, atomically.
func (d *EventDAO) Discard(ctx context.Context, id uint, status string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Event{}).Where("id = ?", id).Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return tx.Where("event_id = ?", id).Delete(&Favorite{}).Error
	})
}

// Delete removes the event row together with its date links and bookmarks.
// The shared date pool rows stay.
func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&Favorite{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&Event{ID: id}).Association("Dates").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return nil
	})
}

// ExpireFinishedEvents clears in_time on every event whose last occurrence is
// before today, in one set-based statement. Returns the number of rows
// flipped.
func (d *EventDAO) ExpireFinishedEvents(ctx context.Context, today time.Time) (int64, error) {
	result := d.db.WithContext(ctx).Exec(`
		UPDATE app_events
		SET in_time = FALSE, updated_at = ?
		WHERE in_time = TRUE
		  AND NOT EXISTS (
			SELECT 1
			FROM events_dates
			JOIN event_dates ON event_dates.id = events_dates.event_date_id
			WHERE events_dates.event_id = app_events.id
			  AND event_dates.full_date >= ?
		  )`, time.Now(), today)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
