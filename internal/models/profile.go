package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a member's role in the community.
type Role string

const (
	RoleUser        Role = "user"
	RoleFacilitator Role = "facilitator"
	RoleAdmin       Role = "admin"
)

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleFacilitator, RoleAdmin:
		return true
	}
	return false
}

// Profile represents a community member account.
type Profile struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	DisplayName      string     `json:"display_name"`
	Role             Role       `json:"role"`
	Title            string     `json:"title,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	Approach         string     `json:"approach,omitempty"`
	Languages        []string   `json:"languages,omitempty"`
	WorkTypes        []string   `json:"work_types,omitempty"`
	Website          string     `json:"website,omitempty"`
	ContactEmail     string     `json:"contact_email,omitempty"`
	IsPublic         bool       `json:"is_public"`
	ImageURL         string     `json:"image_url,omitempty"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ProfilePublic is Profile without private fields, for the facilitator directory.
type ProfilePublic struct {
	ID           uuid.UUID `json:"id"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	Title        string    `json:"title,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Approach     string    `json:"approach,omitempty"`
	Languages    []string  `json:"languages,omitempty"`
	WorkTypes    []string  `json:"work_types,omitempty"`
	Website      string    `json:"website,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
}

// ToPublic converts Profile to ProfilePublic.
func (p *Profile) ToPublic() ProfilePublic {
	return ProfilePublic{
		ID:           p.ID,
		DisplayName:  p.DisplayName,
		Role:         p.Role,
		Title:        p.Title,
		Bio:          p.Bio,
		Approach:     p.Approach,
		Languages:    p.Languages,
		WorkTypes:    p.WorkTypes,
		Website:      p.Website,
		ContactEmail: p.ContactEmail,
		ImageURL:     p.ImageURL,
	}
}

// ConfirmationToken is a one-time email confirmation token for a profile.
type ConfirmationToken struct {
	ID        uuid.UUID  `json:"id"`
	ProfileID uuid.UUID  `json:"profile_id"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AdminStats holds dashboard counts for the admin overview.
type AdminStats struct {
	Users               int `json:"users"`
	Facilitators        int `json:"facilitators"`
	Events              int `json:"events"`
	Resources           int `json:"resources"`
	Venues              int `json:"venues"`
	PendingResources    int `json:"pending_resources"`
	PendingVenues       int `json:"pending_venues"`
	PendingApplications int `json:"pending_applications"`
	ActiveRegistrations int `json:"active_registrations"`
}
