package domain

import "time"

// Favorite is a user's bookmark of an event, enriched with an event snapshot
// so listings don't need a second round trip.
type Favorite struct {
	ID           uint      `json:"id"`
	FavoriteDate time.Time `json:"favorite_date"`
	UserEmail    string    `json:"user_email"`

	EventID               uint       `json:"event_id"`
	EventName             string     `json:"event_name"`
	EventImage            string     `json:"event_image"`
	EventPrice            float64    `json:"event_price"`
	EventThemeName        string     `json:"event_theme_name"`
	EventMunicipalityName string     `json:"event_municipality_name"`
	EventInTime           bool       `json:"event_in_time"`
	EventStatus           StatusType `json:"event_status"`
}
