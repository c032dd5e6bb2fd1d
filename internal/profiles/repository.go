package profiles

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

// Repository handles profile persistence for the directory and admin views.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a profiles repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const publicColumns = `id, display_name, role, COALESCE(title,''), COALESCE(bio,''), COALESCE(approach,''),
	languages, work_types, COALESCE(website,''), COALESCE(contact_email,''), COALESCE(image_url,'')`

// ListFacilitators returns public, confirmed facilitator and admin profiles
// ordered by display name.
func (r *Repository) ListFacilitators(ctx context.Context) ([]models.ProfilePublic, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+publicColumns+` FROM profiles
		WHERE role IN ('facilitator', 'admin') AND is_public AND email_confirmed_at IS NOT NULL
		ORDER BY display_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.ProfilePublic
	for rows.Next() {
		var p models.ProfilePublic
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Role, &p.Title, &p.Bio, &p.Approach,
			&p.Languages, &p.WorkTypes, &p.Website, &p.ContactEmail, &p.ImageURL); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetFacilitator returns one public facilitator profile.
func (r *Repository) GetFacilitator(ctx context.Context, id uuid.UUID) (*models.ProfilePublic, error) {
	var p models.ProfilePublic
	err := r.pool.QueryRow(ctx, `SELECT `+publicColumns+` FROM profiles
		WHERE id = $1 AND role IN ('facilitator', 'admin') AND is_public`, id).
		Scan(&p.ID, &p.DisplayName, &p.Role, &p.Title, &p.Bio, &p.Approach,
			&p.Languages, &p.WorkTypes, &p.Website, &p.ContactEmail, &p.ImageURL)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateParams holds the self-editable profile fields. Nil means unchanged.
type UpdateParams struct {
	DisplayName  *string
	Title        *string
	Bio          *string
	Approach     *string
	Languages    []string
	WorkTypes    []string
	Website      *string
	ContactEmail *string
	IsPublic     *bool
	ImageURL     *string
}

// Update applies a partial self-edit and returns the updated profile.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Profile, error) {
	const q = `UPDATE profiles SET
		display_name = COALESCE($2, display_name),
		title = COALESCE($3, title),
		bio = COALESCE($4, bio),
		approach = COALESCE($5, approach),
		languages = COALESCE($6, languages),
		work_types = COALESCE($7, work_types),
		website = COALESCE($8, website),
		contact_email = COALESCE($9, contact_email),
		is_public = COALESCE($10, is_public),
		image_url = COALESCE($11, image_url),
		updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, password_hash, display_name, role,
		COALESCE(title,''), COALESCE(bio,''), COALESCE(approach,''), languages, work_types,
		COALESCE(website,''), COALESCE(contact_email,''), is_public, COALESCE(image_url,''),
		email_confirmed_at, created_at, updated_at`
	var out models.Profile
	err := r.pool.QueryRow(ctx, q, id, p.DisplayName, p.Title, p.Bio, p.Approach,
		p.Languages, p.WorkTypes, p.Website, p.ContactEmail, p.IsPublic, p.ImageURL).
		Scan(&out.ID, &out.Email, &out.PasswordHash, &out.DisplayName, &out.Role,
			&out.Title, &out.Bio, &out.Approach, &out.Languages, &out.WorkTypes,
			&out.Website, &out.ContactEmail, &out.IsPublic, &out.ImageURL,
			&out.EmailConfirmedAt, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns all profiles for admin user management, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, password_hash, display_name, role,
		COALESCE(title,''), COALESCE(bio,''), COALESCE(approach,''), languages, work_types,
		COALESCE(website,''), COALESCE(contact_email,''), is_public, COALESCE(image_url,''),
		email_confirmed_at, created_at, updated_at
		FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.DisplayName, &p.Role,
			&p.Title, &p.Bio, &p.Approach, &p.Languages, &p.WorkTypes,
			&p.Website, &p.ContactEmail, &p.IsPublic, &p.ImageURL,
			&p.EmailConfirmedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SetRole changes a profile's role.
func (r *Repository) SetRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	tag, err := r.pool.Exec(ctx, `UPDATE profiles SET role = $2, updated_at = NOW() WHERE id = $1`, id, string(role))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Stats returns dashboard counts for the admin overview.
func (r *Repository) Stats(ctx context.Context) (*models.AdminStats, error) {
	const q = `SELECT
		(SELECT COUNT(*) FROM profiles),
		(SELECT COUNT(*) FROM profiles WHERE role = 'facilitator'),
		(SELECT COUNT(*) FROM events),
		(SELECT COUNT(*) FROM resources),
		(SELECT COUNT(*) FROM venues),
		(SELECT COUNT(*) FROM resource_submissions WHERE status = 'pending'),
		(SELECT COUNT(*) FROM venue_submissions WHERE status = 'pending'),
		(SELECT COUNT(*) FROM facilitator_applications WHERE status = 'pending'),
		(SELECT COUNT(*) FROM event_registrations WHERE cancelled_at IS NULL)`
	var s models.AdminStats
	err := r.pool.QueryRow(ctx, q).Scan(&s.Users, &s.Facilitators, &s.Events, &s.Resources, &s.Venues,
		&s.PendingResources, &s.PendingVenues, &s.PendingApplications, &s.ActiveRegistrations)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
