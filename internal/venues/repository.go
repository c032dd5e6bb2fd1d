package venues

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

// Repository persists published venues.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a venues repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const venueColumns = `
	id, name, location, capacity, contact_info, cost_level,
	COALESCE(notes, ''), COALESCE(image_url, ''), owner_id, created_at, updated_at`

func scanVenue(row interface{ Scan(...any) error }) (*models.Venue, error) {
	var v models.Venue
	err := row.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity, &v.ContactInfo, &v.CostLevel,
		&v.Notes, &v.ImageURL, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create publishes a venue directly (facilitator/admin path).
func (r *Repository) Create(ctx context.Context, v *models.Venue) error {
	const q = `
		INSERT INTO venues
			(name, location, capacity, contact_info, cost_level, notes, image_url, owner_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q,
		v.Name, v.Location, v.Capacity, v.ContactInfo, string(v.CostLevel),
		v.Notes, v.ImageURL, v.OwnerID,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

// GetByID fetches a published venue.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	q := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	v, err := scanVenue(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

// List returns published venues, optionally filtered by cost level, ordered
// by name.
func (r *Repository) List(ctx context.Context, costLevel string) ([]models.Venue, error) {
	q := `SELECT ` + venueColumns + ` FROM venues`
	args := []any{}
	if costLevel != "" {
		q += ` WHERE cost_level = $1`
		args = append(args, costLevel)
	}
	q += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var out []models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// UpdateParams are the editable venue fields. Nil means leave unchanged.
type UpdateParams struct {
	Name        *string
	Location    *string
	Capacity    *int
	ContactInfo *string
	CostLevel   *string
	Notes       *string
	ImageURL    *string
}

// Update applies a partial update and returns the new row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Venue, error) {
	q := `
		UPDATE venues SET
			name = COALESCE($2, name),
			location = COALESCE($3, location),
			capacity = COALESCE($4, capacity),
			contact_info = COALESCE($5, contact_info),
			cost_level = COALESCE($6, cost_level),
			notes = COALESCE($7, notes),
			image_url = COALESCE($8, image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + venueColumns
	v, err := scanVenue(r.pool.QueryRow(ctx, q, id,
		p.Name, p.Location, p.Capacity, p.ContactInfo, p.CostLevel, p.Notes, p.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return v, nil
}

// Delete removes a published venue.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete venue: %w", pgx.ErrNoRows)
	}
	return nil
}
