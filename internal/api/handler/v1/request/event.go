package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const dateLayout = "2006-01-02"

type CreateEventRequest struct {
	Name         string   `json:"name"`
	Summary      string   `json:"summary"`
	Description  string   `json:"description"`
	PlaceName    string   `json:"place_name"`
	Address      string   `json:"address"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Image        string   `json:"image"`
	InfoURL      string   `json:"info_url"`
	IsFree       bool     `json:"is_free"`
	Price        float64  `json:"price"`
	Municipality string   `json:"municipality"`
	Theme        string   `json:"theme"`
	Dates        []string `json:"dates"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Summary, validation.Length(0, 500)),
		validation.Field(&req.Municipality, validation.Required),
		validation.Field(&req.Theme, validation.Required),
		validation.Field(&req.Dates, validation.Required, validation.Each(validation.Date(dateLayout))),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

// ParsedDates converts the wire dates into day values. Call after Validate.
func (req *CreateEventRequest) ParsedDates() ([]time.Time, error) {
	days := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("time.Parse -> %w", err)
		}

		days = append(days, day)
	}

	return days, nil
}

// UpdateEventRequest carries the same fields as a create.
type UpdateEventRequest = CreateEventRequest

type SearchEventsRequest struct {
	Province     string   `form:"province"`
	Date         string   `form:"date"`
	Theme        *string  `form:"theme"`
	Municipality *string  `form:"municipality"`
	MaxPrice     *float64 `form:"max_price"`
}

func (req *SearchEventsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Province, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date(dateLayout)),
	)
}

// ParsedDate returns the search day. Call after Validate.
func (req *SearchEventsRequest) ParsedDate() (time.Time, error) {
	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse -> %w", err)
	}

	return day, nil
}
