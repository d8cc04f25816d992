package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventDateNotFound = errors.New("event date not found")

// EventDate is a row of the shared calendar-day pool. Each distinct day is
// stored once and linked to events through the events_dates join table.
type EventDate struct {
	ID       uint      `gorm:"primaryKey"`
	FullDate time.Time `gorm:"type:date;unique;not null"`
}

type EventDateDAO struct {
	db *gorm.DB
}

func NewEventDateDAO(db *gorm.DB) *EventDateDAO {
	return &EventDateDAO{
		db: db,
	}
}

func (d *EventDateDAO) Insert(ctx context.Context, date EventDate) (EventDate, error) {
	result := d.db.WithContext(ctx).Create(&date)
	if result.Error != nil {
		return EventDate{}, result.Error
	}

	return date, nil
}

func (d *EventDateDAO) FindByDate(ctx context.Context, day time.Time) (EventDate, error) {
	var date EventDate

	result := d.db.WithContext(ctx).First(&date, "full_date = ?", day)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventDate{}, ErrEventDateNotFound
		}

		return EventDate{}, result.Error
	}

	return date, nil
}

func (d *EventDateDAO) AllByEventID(ctx context.Context, eventID uint) ([]EventDate, error) {
	var dates []EventDate

	result := d.db.WithContext(ctx).
		Joins("JOIN events_dates ON events_dates.event_date_id = event_dates.id").
		Where("events_dates.event_id = ?", eventID).
		Order("event_dates.full_date ASC").
		Find(&dates)
	if result.Error != nil {
		return nil, result.Error
	}

	return dates, nil
}

func (d *EventDateDAO) UpcomingByEventID(ctx context.Context, eventID uint, from time.Time) ([]EventDate, error) {
	var dates []EventDate

	result := d.db.WithContext(ctx).
		Joins("JOIN events_dates ON events_dates.event_date_id = event_dates.id").
		Where("events_dates.event_id = ?", eventID).
		Where("event_dates.full_date >= ?", from).
		Order("event_dates.full_date ASC").
		Find(&dates)
	if result.Error != nil {
		return nil, result.Error
	}

	return dates, nil
}
