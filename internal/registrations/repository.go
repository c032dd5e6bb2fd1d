package registrations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

var (
	// ErrEventFull is returned when the event's capacity is reached.
	ErrEventFull = errors.New("event is full")
	// ErrAlreadyRegistered is returned on a duplicate active registration.
	ErrAlreadyRegistered = errors.New("already registered for this event")
)

// Repository handles event registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an active registration inside a transaction that locks the
// event row first. Concurrent signups for the same event serialize on that
// lock, so the last seat cannot be handed out twice. A partial unique index
// rejects duplicate active registrations.
func (r *Repository) Create(ctx context.Context, eventID, userID uuid.UUID) (*models.Registration, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&capacity)
	if err != nil {
		return nil, err
	}

	const q = `INSERT INTO event_registrations (event_id, user_id)
		SELECT $1, $2
		WHERE (SELECT COUNT(*) FROM event_registrations r
		       WHERE r.event_id = $1 AND r.cancelled_at IS NULL) < $3
		RETURNING id, registered_at`
	reg := &models.Registration{EventID: eventID, UserID: userID}
	if err := tx.QueryRow(ctx, q, eventID, userID, capacity).Scan(&reg.ID, &reg.RegisteredAt); err != nil {
		return nil, classifyRegisterError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}

// classifyRegisterError maps the two expected insert failures: the partial
// unique index rejects a second active registration for the same member, and
// an empty result means the capacity check kept the row out.
func classifyRegisterError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyRegistered
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEventFull
	}
	return err
}

// GetByID returns a registration by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	const q = `SELECT id, event_id, user_id, registered_at, cancelled_at FROM event_registrations WHERE id = $1`
	var reg models.Registration
	err := r.pool.QueryRow(ctx, q, id).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt, &reg.CancelledAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Cancel soft-cancels a registration. Re-cancelling an already-cancelled
// registration is a no-op.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE event_registrations SET cancelled_at = NOW() WHERE id = $1 AND cancelled_at IS NULL`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

// ListParticipants returns active registrations for an event joined with the
// member's name and email, ordered by registration time ascending.
func (r *Repository) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]models.Participant, error) {
	const q = `SELECT r.id, r.user_id, p.display_name, p.email, r.registered_at
		FROM event_registrations r
		JOIN profiles p ON p.id = r.user_id
		WHERE r.event_id = $1 AND r.cancelled_at IS NULL
		ORDER BY r.registered_at`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.RegistrationID, &p.UserID, &p.DisplayName, &p.Email, &p.RegisteredAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListByUser returns the events a member has registered for (active
// registrations only), joined with the event, soonest-first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.AttendedEvent, error) {
	const q = `SELECT e.id, e.title, e.description, e.event_date, e.start_time, e.location,
		e.event_type, e.capacity, e.price_cents, e.facilitator_id, COALESCE(e.image_url,''),
		e.created_at, e.updated_at,
		(SELECT COUNT(*) FROM event_registrations a WHERE a.event_id = e.id AND a.cancelled_at IS NULL),
		r.id, r.registered_at, r.cancelled_at
		FROM event_registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1 AND r.cancelled_at IS NULL
		ORDER BY e.event_date, e.start_time`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.AttendedEvent
	for rows.Next() {
		var a models.AttendedEvent
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.EventDate, &a.StartTime, &a.Location,
			&a.Type, &a.Capacity, &a.PriceCents, &a.FacilitatorID, &a.ImageURL,
			&a.CreatedAt, &a.UpdatedAt, &a.CurrentParticipants,
			&a.RegistrationID, &a.RegisteredAt, &a.CancelledAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
