package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

const profileColumns = `id, email, password_hash, display_name, role,
	COALESCE(title,''), COALESCE(bio,''), COALESCE(approach,''), languages, work_types,
	COALESCE(website,''), COALESCE(contact_email,''), is_public, COALESCE(image_url,''),
	email_confirmed_at, created_at, updated_at`

// Repository handles profile persistence for authentication.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.DisplayName, &p.Role,
		&p.Title, &p.Bio, &p.Approach, &p.Languages, &p.WorkTypes,
		&p.Website, &p.ContactEmail, &p.IsPublic, &p.ImageURL,
		&p.EmailConfirmedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns a profile by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

// GetByEmail returns a profile by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email))
}

// Create inserts a new profile with role 'user'.
func (r *Repository) Create(ctx context.Context, email, passwordHash, displayName string) (*models.Profile, error) {
	const q = `INSERT INTO profiles (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING ` + profileColumns
	return scanProfile(r.pool.QueryRow(ctx, q, email, passwordHash, displayName))
}

// CreateConfirmationToken inserts a one-time email confirmation token.
func (r *Repository) CreateConfirmationToken(ctx context.Context, t *models.ConfirmationToken) error {
	const q = `INSERT INTO confirmation_tokens (profile_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, used_at, created_at`
	return r.pool.QueryRow(ctx, q, t.ProfileID, t.Token, t.ExpiresAt).
		Scan(&t.ID, &t.UsedAt, &t.CreatedAt)
}

// GetConfirmationToken returns a confirmation token by its string.
func (r *Repository) GetConfirmationToken(ctx context.Context, tokenStr string) (*models.ConfirmationToken, error) {
	const q = `SELECT id, profile_id, token, expires_at, used_at, created_at
		FROM confirmation_tokens WHERE token = $1`
	var t models.ConfirmationToken
	err := r.pool.QueryRow(ctx, q, tokenStr).Scan(&t.ID, &t.ProfileID, &t.Token, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ConfirmEmail marks the token used and sets the profile's confirmation
// timestamp in a single transaction. Returns false when the token was already
// used (no state is changed).
func (r *Repository) ConfirmEmail(ctx context.Context, tokenID, profileID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE confirmation_tokens SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`, tokenID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := tx.Exec(ctx,
		`UPDATE profiles SET email_confirmed_at = COALESCE(email_confirmed_at, NOW()), updated_at = NOW() WHERE id = $1`,
		profileID); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}
