package models

import (
	"time"

	"github.com/google/uuid"
)

// CostLevel is a venue's rough price band.
type CostLevel string

const (
	CostFree   CostLevel = "free"
	CostLow    CostLevel = "low"
	CostMedium CostLevel = "medium"
	CostHigh   CostLevel = "high"
)

// ValidCostLevel reports whether s is a known cost level.
func ValidCostLevel(s string) bool {
	switch CostLevel(s) {
	case CostFree, CostLow, CostMedium, CostHigh:
		return true
	}
	return false
}

// Venue is a published practice space.
type Venue struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	ContactInfo string    `json:"contact_info"`
	CostLevel   CostLevel `json:"cost_level"`
	Notes       string    `json:"notes,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VenueSubmission is a member-suggested venue awaiting review.
type VenueSubmission struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	ContactInfo string    `json:"contact_info"`
	CostLevel   CostLevel `json:"cost_level"`
	Notes       string    `json:"notes,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SubmittedBy uuid.UUID `json:"submitted_by"`
	Review

	SubmitterName string `json:"submitter_name,omitempty"`
}
