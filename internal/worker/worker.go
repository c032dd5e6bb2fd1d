// Package worker drains the email queue and delivers messages. It runs both
// as an in-process goroutine next to the API server and as the standalone
// worker binary.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/stillpoint-community/backend/internal/emaillogs"
	"github.com/stillpoint-community/backend/internal/models"
	"github.com/stillpoint-community/backend/pkg/mail"
	"github.com/stillpoint-community/backend/pkg/queue"
)

// EmailProcessor consumes email jobs and records each delivery attempt.
type EmailProcessor struct {
	queue  *queue.Queue
	sender mail.Sender
	logs   *emaillogs.Repository
	logger *zap.Logger
}

// NewEmailProcessor creates an email processor. logs may be nil, in which
// case attempts are not persisted.
func NewEmailProcessor(q *queue.Queue, sender mail.Sender, logs *emaillogs.Repository, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{queue: q, sender: sender, logs: logs, logger: logger}
}

// Run blocks on the queue until ctx is cancelled.
func (p *EmailProcessor) Run(ctx context.Context) {
	p.logger.Info("email worker started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("email worker stopping")
				return
			}
			p.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}
		p.process(ctx, job)
	}
}

func (p *EmailProcessor) process(ctx context.Context, job *queue.Job) {
	if job.Type != queue.JobTypeEmail {
		p.logger.Warn("unknown job type", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		return
	}
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		p.logger.Warn("bad email payload", zap.String("job_id", job.ID), zap.Error(err))
		return
	}

	err := p.sender.Send(mail.Message{
		ToName:    payload.RecipientName,
		ToAddress: payload.RecipientEmail,
		Subject:   payload.Subject,
		BodyText:  payload.BodyText,
		BodyHTML:  payload.BodyHTML,
	})
	p.record(ctx, payload, err)
	if err != nil {
		p.logger.Warn("send failed",
			zap.String("job_id", job.ID),
			zap.String("kind", string(payload.Kind)),
			zap.Int("attempt", job.Attempt),
			zap.Error(err))
		if rerr := p.queue.Retry(ctx, job); rerr != nil {
			p.logger.Error("retry failed", zap.String("job_id", job.ID), zap.Error(rerr))
		}
		time.Sleep(queue.RetryBackoff)
		return
	}
	p.logger.Info("email sent",
		zap.String("kind", string(payload.Kind)),
		zap.String("recipient", payload.RecipientEmail))
}

func (p *EmailProcessor) record(ctx context.Context, payload queue.EmailPayload, sendErr error) {
	if p.logs == nil {
		return
	}
	log := &models.EmailLog{
		EmailType:      string(payload.Kind),
		RecipientEmail: payload.RecipientEmail,
		Subject:        payload.Subject,
		Status:         "sent",
	}
	if sendErr != nil {
		log.Status = "failed"
		log.ErrorMessage = sendErr.Error()
	} else {
		now := time.Now()
		log.SentAt = &now
	}
	if err := p.logs.Create(ctx, log); err != nil {
		p.logger.Error("record email attempt failed", zap.Error(err))
	}
}
