// Package notify composes transactional emails and hands them to the job
// queue. Delivery happens in the worker; enqueue failures are the caller's
// to log, never to surface to the member.
package notify

import (
	"context"
	"fmt"

	"github.com/stillpoint-community/backend/pkg/queue"
)

// Service enqueues email jobs.
type Service struct {
	queue   *queue.Queue
	appName string
	baseURL string
}

// NewService creates a notify service. baseURL is the public API base used in
// links (e.g. the confirmation endpoint).
func NewService(q *queue.Queue, appName, baseURL string) *Service {
	return &Service{queue: q, appName: appName, baseURL: baseURL}
}

// Confirmation enqueues the email-confirmation message for a new or
// re-requesting member.
func (s *Service) Confirmation(ctx context.Context, email, name, token string) error {
	link := s.baseURL + "/auth/confirm/" + token
	return s.queue.EnqueueEmail(ctx, queue.EmailPayload{
		Kind:           queue.EmailConfirmation,
		RecipientEmail: email,
		RecipientName:  name,
		Subject:        fmt.Sprintf("[%s] Confirm your email", s.appName),
		BodyText: fmt.Sprintf("Hi %s,\n\nPlease confirm your email address by opening this link:\n%s\n\nIf you did not sign up, you can ignore this message.\n", name, link),
		BodyHTML: fmt.Sprintf(`<p>Hi %s,</p><p>Please confirm your email address by clicking <a href="%s">this link</a>.</p><p>If you did not sign up, you can ignore this message.</p>`, name, link),
	})
}

// SubmissionReceived enqueues the acknowledgement sent when a member's
// submission enters the review queue. kind names the domain for the subject
// line (e.g. "resource", "venue", "facilitator application").
func (s *Service) SubmissionReceived(ctx context.Context, email, name, kind, title string) error {
	return s.queue.EnqueueEmail(ctx, queue.EmailPayload{
		Kind:           queue.EmailSubmissionReceived,
		RecipientEmail: email,
		RecipientName:  name,
		Subject:        fmt.Sprintf("[%s] We received your %s submission", s.appName, kind),
		BodyText: fmt.Sprintf("Hi %s,\n\nThanks for submitting %q. Our moderators will review it and you will hear back once a decision is made.\n", name, title),
		BodyHTML: fmt.Sprintf("<p>Hi %s,</p><p>Thanks for submitting <strong>%s</strong>. Our moderators will review it and you will hear back once a decision is made.</p>", name, title),
	})
}

// Decision enqueues the approval or rejection notice for a reviewed submission.
func (s *Service) Decision(ctx context.Context, email, name, kind, title string, approved bool, notes string) error {
	outcome := "approved"
	if !approved {
		outcome = "not approved"
	}
	text := fmt.Sprintf("Hi %s,\n\nYour %s submission %q was %s.\n", name, kind, title, outcome)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your %s submission <strong>%s</strong> was %s.</p>", name, kind, title, outcome)
	if notes != "" {
		text += "\nReviewer notes: " + notes + "\n"
		html += "<p>Reviewer notes: " + notes + "</p>"
	}
	return s.queue.EnqueueEmail(ctx, queue.EmailPayload{
		Kind:           queue.EmailSubmissionDecision,
		RecipientEmail: email,
		RecipientName:  name,
		Subject:        fmt.Sprintf("[%s] Your %s submission was %s", s.appName, kind, outcome),
		BodyText:       text,
		BodyHTML:       html,
	})
}
