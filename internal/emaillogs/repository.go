// Package emaillogs records every attempted outgoing email for admin audit.
package emaillogs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

// Repository persists email delivery attempts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an email log repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create records one delivery attempt.
func (r *Repository) Create(ctx context.Context, log *models.EmailLog) error {
	const q = `
		INSERT INTO email_logs (email_type, recipient_email, subject, status, sent_at, error_message)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''))
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q,
		log.EmailType, log.RecipientEmail, log.Subject, log.Status, log.SentAt, log.ErrorMessage,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

// List returns the most recent attempts, newest first, capped at limit.
func (r *Repository) List(ctx context.Context, limit int) ([]models.EmailLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const q = `
		SELECT id, email_type, recipient_email, COALESCE(subject, ''), status,
		       sent_at, COALESCE(error_message, ''), created_at
		FROM email_logs
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	var out []models.EmailLog
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.ID, &l.EmailType, &l.RecipientEmail, &l.Subject,
			&l.Status, &l.SentAt, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
