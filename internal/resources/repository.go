package resources

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

// Repository persists published library resources.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a resources repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const resourceColumns = `
	id, title, author, resource_type, category, description,
	COALESCE(content, ''), COALESCE(url, ''), tags, COALESCE(image_url, ''),
	published_by, created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (*models.Resource, error) {
	var r models.Resource
	err := row.Scan(&r.ID, &r.Title, &r.Author, &r.Type, &r.Category, &r.Description,
		&r.Content, &r.URL, &r.Tags, &r.ImageURL,
		&r.PublishedBy, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create publishes a resource directly (facilitator/admin path).
func (r *Repository) Create(ctx context.Context, res *models.Resource) error {
	const q = `
		INSERT INTO resources
			(title, author, resource_type, category, description, content, url, tags, image_url, published_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''), $10)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q,
		res.Title, res.Author, string(res.Type), res.Category, res.Description,
		res.Content, res.URL, res.Tags, res.ImageURL, res.PublishedBy,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// GetByID fetches a published resource.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	res, err := scanResource(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return res, nil
}

// List returns published resources, optionally filtered by category and
// type, newest first.
func (r *Repository) List(ctx context.Context, category, resourceType string) ([]models.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM resources WHERE 1=1`
	args := []any{}
	if category != "" {
		args = append(args, category)
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if resourceType != "" {
		args = append(args, resourceType)
		q += fmt.Sprintf(" AND resource_type = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var out []models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// UpdateParams are the editable resource fields. Nil means leave unchanged.
type UpdateParams struct {
	Title       *string
	Author      *string
	Category    *string
	Description *string
	Content     *string
	URL         *string
	Tags        []string
	ImageURL    *string
}

// Update applies a partial update and returns the new row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*models.Resource, error) {
	q := `
		UPDATE resources SET
			title = COALESCE($2, title),
			author = COALESCE($3, author),
			category = COALESCE($4, category),
			description = COALESCE($5, description),
			content = COALESCE($6, content),
			url = COALESCE($7, url),
			tags = COALESCE($8, tags),
			image_url = COALESCE($9, image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + resourceColumns
	res, err := scanResource(r.pool.QueryRow(ctx, q, id,
		p.Title, p.Author, p.Category, p.Description, p.Content, p.URL, p.Tags, p.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return res, nil
}

// Delete removes a published resource.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete resource: %w", pgx.ErrNoRows)
	}
	return nil
}
