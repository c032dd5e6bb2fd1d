package models

import (
	"github.com/google/uuid"
)

// FacilitatorApplication is a member's request to become a facilitator.
// Approval promotes the applicant's profile role in place; there is no
// separate published entity.
type FacilitatorApplication struct {
	ID                uuid.UUID `json:"id"`
	ApplicantID       uuid.UUID `json:"applicant_id"`
	Experience        string    `json:"experience"`
	Title             string    `json:"title,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	YearsOfExperience int       `json:"years_of_experience,omitempty"`
	Certifications    []string  `json:"certifications,omitempty"`
	WorkTypes         []string  `json:"work_types,omitempty"`
	Languages         []string  `json:"languages,omitempty"`
	Availability      string    `json:"availability,omitempty"`
	ReferenceInfo     string    `json:"reference_info,omitempty"`
	ContactEmail      string    `json:"contact_email,omitempty"`
	Website           string    `json:"website,omitempty"`
	Review

	SubmitterName string `json:"submitter_name,omitempty"`
}
