package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

// ErrHasRegistrations is returned when deleting an event that still has
// active registrations.
var ErrHasRegistrations = errors.New("event has active registrations")

const eventColumns = `e.id, e.title, e.description, e.event_date, e.start_time, e.location,
	e.event_type, e.capacity, e.price_cents, e.facilitator_id, COALESCE(e.image_url,''),
	e.created_at, e.updated_at,
	(SELECT COUNT(*) FROM event_registrations r WHERE r.event_id = e.id AND r.cancelled_at IS NULL)`

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventDate, &e.StartTime, &e.Location,
		&e.Type, &e.Capacity, &e.PriceCents, &e.FacilitatorID, &e.ImageURL,
		&e.CreatedAt, &e.UpdatedAt, &e.CurrentParticipants)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (title, description, event_date, start_time, location, event_type, capacity, price_cents, facilitator_id, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10,''))
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, e.Title, e.Description, e.EventDate, e.StartTime, e.Location,
		string(e.Type), e.Capacity, e.PriceCents, e.FacilitatorID, e.ImageURL).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID returns an event with its active participant count.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1`, id))
}

// List returns events soonest-first, optionally filtered by type.
func (r *Repository) List(ctx context.Context, eventType *models.EventType) ([]models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events e`
	var args []interface{}
	if eventType != nil {
		q += ` WHERE e.event_type = $1`
		args = append(args, string(*eventType))
	}
	q += ` ORDER BY e.event_date, e.start_time`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// ListByFacilitator returns events run by the given facilitator, soonest-first.
func (r *Repository) ListByFacilitator(ctx context.Context, facilitatorID uuid.UUID) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.facilitator_id = $1 ORDER BY e.event_date, e.start_time`,
		facilitatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// UpdateParams holds the editable event fields. Nil means unchanged.
type UpdateParams struct {
	Title       *string
	Description *string
	EventDate   *string // YYYY-MM-DD
	StartTime   *string
	Location    *string
	Capacity    *int
	PriceCents  *int
	ImageURL    *string
}

// Update applies a partial edit. Nil pointers leave fields unchanged.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) error {
	const q = `UPDATE events SET
		title = COALESCE($2, title),
		description = COALESCE($3, description),
		event_date = COALESCE($4::date, event_date),
		start_time = COALESCE($5, start_time),
		location = COALESCE($6, location),
		capacity = COALESCE($7, capacity),
		price_cents = COALESCE($8, price_cents),
		image_url = COALESCE($9, image_url),
		updated_at = NOW()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, q, id, p.Title, p.Description, p.EventDate, p.StartTime, p.Location, p.Capacity, p.PriceCents, p.ImageURL)
	return err
}

// Delete removes an event only when it has no active registrations.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events e WHERE e.id = $1
		AND NOT EXISTS (SELECT 1 FROM event_registrations r WHERE r.event_id = e.id AND r.cancelled_at IS NULL)`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either missing or still has signups; let the caller distinguish.
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrHasRegistrations
		}
		return pgx.ErrNoRows
	}
	return nil
}
