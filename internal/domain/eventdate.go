package domain

import "time"

// EventDate is a single calendar day from the shared date pool. The same row
// is reused by every event celebrated on that day.
type EventDate struct {
	ID       uint      `json:"id"`
	FullDate time.Time `json:"full_date"`
}
