package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog records one attempted outgoing email.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	EmailType      string     `json:"email_type"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"` // sent | failed
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
