package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration is a member's signup for an event. Cancellation is soft:
// CancelledAt is set and the row is excluded from active counts.
type Registration struct {
	ID           uuid.UUID  `json:"id"`
	EventID      uuid.UUID  `json:"event_id"`
	UserID       uuid.UUID  `json:"user_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// Participant is an active registration joined with the member's identity,
// for the facilitator's participant list.
type Participant struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	UserID         uuid.UUID `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Email          string    `json:"email"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// AttendedEvent is an event joined with the caller's registration, for "my events".
type AttendedEvent struct {
	Event
	RegistrationID uuid.UUID  `json:"registration_id"`
	RegisteredAt   time.Time  `json:"registered_at"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
}
