package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType classifies an event.
type EventType string

const (
	EventWorkshop     EventType = "workshop"
	EventGroupSession EventType = "group_session"
	EventRetreat      EventType = "retreat"
)

// ValidEventType reports whether s is a known event type.
func ValidEventType(s string) bool {
	switch EventType(s) {
	case EventWorkshop, EventGroupSession, EventRetreat:
		return true
	}
	return false
}

// Event represents a scheduled community event.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	EventDate     time.Time `json:"event_date"`
	StartTime     string    `json:"start_time"` // HH:MM, local to the venue
	Location      string    `json:"location"`
	Type          EventType `json:"type"`
	Capacity      int       `json:"capacity"`
	PriceCents    int       `json:"price_cents"`
	FacilitatorID uuid.UUID `json:"facilitator_id"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// CurrentParticipants is the active registration count, filled on reads
	// that join the registrations table.
	CurrentParticipants int `json:"current_participants"`
}
