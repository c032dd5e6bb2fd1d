package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the review state of a submission. Transitions are
// pending -> approved or pending -> rejected, each at most once.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Review holds the shared review-tracking fields of every submission type.
type Review struct {
	Status      SubmissionStatus `json:"status"`
	AdminNotes  string           `json:"admin_notes,omitempty"`
	ReviewedBy  *uuid.UUID       `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time       `json:"reviewed_at,omitempty"`
	SubmittedAt time.Time        `json:"submitted_at"`
}
