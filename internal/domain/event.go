package domain

import (
	"errors"
	"strings"
	"time"
)

// StatusType is the review state of an event.
type StatusType string

const (
	StatusPending   StatusType = "PENDING"
	StatusPublished StatusType = "PUBLISHED"
	StatusDiscarded StatusType = "DISCARDED"
)

var ErrInvalidStatus = errors.New("invalid event status")

// ParseStatus converts a free-text status name into a StatusType.
func ParseStatus(s string) (StatusType, error) {
	switch StatusType(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusPublished:
		return StatusPublished, nil
	case StatusDiscarded:
		return StatusDiscarded, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Event struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	PlaceName   string  `json:"place_name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Image       string  `json:"image"`
	InfoURL     string  `json:"info_url"`
	IsFree      bool    `json:"is_free"`
	Price       float64 `json:"price"`

	// InTime is true while the event still has a non-past occurrence.
	InTime bool       `json:"in_time"`
	Status StatusType `json:"status"`

	MunicipalityID   uint   `json:"municipality_id"`
	MunicipalityName string `json:"municipality_name"`
	ProvinceName     string `json:"province_name"`
	ThemeID          uint   `json:"theme_id"`
	ThemeName        string `json:"theme_name"`
	UserID           uint   `json:"user_id"`
	UserEmail        string `json:"user_email"`

	Dates []EventDate `json:"dates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventDraft carries the user-supplied fields of a create or update request.
// Relations are referenced by name and resolved by the service.
type EventDraft struct {
	Name             string
	Summary          string
	Description      string
	PlaceName        string
	Address          string
	Latitude         float64
	Longitude        float64
	Image            string
	InfoURL          string
	IsFree           bool
	Price            float64
	MunicipalityName string
	ThemeName        string
	Dates            []time.Time
}

// SearchFilters holds the published-event search criteria. Province and Date
// are mandatory; nil optional filters impose no constraint.
type SearchFilters struct {
	ProvinceName     string
	Date             time.Time
	ThemeName        *string
	MunicipalityName *string
	MaxPrice         *float64
}
