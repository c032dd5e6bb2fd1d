// Package submissions implements the moderation queue shared by member
// resources, venue suggestions, and facilitator applications. Submit and
// validation are domain-typed; the review engine is one generic workflow
// over a domain tag.
package submissions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Domain identifies which review queue a submission belongs to.
type Domain string

const (
	DomainResource    Domain = "resource"
	DomainVenue       Domain = "venue"
	DomainApplication Domain = "facilitator_application"
)

// Label is the human form used in emails and messages.
func (d Domain) Label() string {
	if d == DomainApplication {
		return "facilitator application"
	}
	return string(d)
}

var (
	// ErrNotFound means no submission with that id exists in the domain.
	ErrNotFound = errors.New("submission not found")
	// ErrAlreadyReviewed means the submission left the pending state before
	// this decision; the second decision performs no side effect.
	ErrAlreadyReviewed = errors.New("submission already reviewed")
)

// Outcome describes a decided submission, for the notice to the submitter.
type Outcome struct {
	Title          string
	SubmitterEmail string
	SubmitterName  string
}

// Store persists review decisions. Approve performs the domain's publish
// side effect and the status flip in a single transaction, guarded so only
// a pending submission can be decided.
type Store interface {
	Approve(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error)
	Reject(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error)
}

// Notifier enqueues the decision notice. Failures are logged, never
// surfaced: the decision already committed.
type Notifier interface {
	Decision(ctx context.Context, email, name, kind, title string, approved bool, notes string) error
}

// Workflow is the generic review engine.
type Workflow struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
}

// NewWorkflow creates a review workflow. notifier may be nil.
func NewWorkflow(store Store, notifier Notifier, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{store: store, notifier: notifier, logger: logger}
}

// Approve publishes the submission's derived entity and marks it approved.
func (w *Workflow) Approve(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	out, err := w.store.Approve(ctx, domain, id, reviewerID, notes)
	if err != nil {
		return nil, err
	}
	w.notify(ctx, domain, out, true, notes)
	return out, nil
}

// Reject marks the submission rejected with no side effect.
func (w *Workflow) Reject(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	out, err := w.store.Reject(ctx, domain, id, reviewerID, notes)
	if err != nil {
		return nil, err
	}
	w.notify(ctx, domain, out, false, notes)
	return out, nil
}

func (w *Workflow) notify(ctx context.Context, domain Domain, out *Outcome, approved bool, notes string) {
	if w.notifier == nil || out == nil || out.SubmitterEmail == "" {
		return
	}
	if err := w.notifier.Decision(ctx, out.SubmitterEmail, out.SubmitterName, domain.Label(), out.Title, approved, notes); err != nil {
		w.logger.Warn("decision notice enqueue failed",
			zap.String("domain", string(domain)),
			zap.Error(err))
	}
}
