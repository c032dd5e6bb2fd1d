package submissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stillpoint-community/backend/internal/models"
)

// ErrPendingApplication means the applicant already has an application in
// the review queue.
var ErrPendingApplication = errors.New("an application is already pending")

// PgStore is the Postgres-backed submission store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a Postgres submission store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// domainTable maps a domain to its table layout. The values are fixed
// compile-time identifiers, never user input.
type domainTable struct {
	table     string
	titleExpr string
	byColumn  string
}

var domainTables = map[Domain]domainTable{
	DomainResource:    {"resource_submissions", "t.title", "submitted_by"},
	DomainVenue:       {"venue_submissions", "t.name", "submitted_by"},
	DomainApplication: {"facilitator_applications", "COALESCE(NULLIF(t.title, ''), 'Facilitator application')", "applicant_id"},
}

// Approve flips a pending submission to approved and performs the domain's
// publish side effect, all inside one transaction.
func (s *PgStore) Approve(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	dt, ok := domainTables[domain]
	if !ok {
		return nil, fmt.Errorf("unknown submission domain %q", domain)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	out, err := s.decide(ctx, tx, dt, id, reviewerID, notes, models.StatusApproved)
	if err != nil {
		return nil, err
	}

	switch domain {
	case DomainResource:
		err = s.publishResource(ctx, tx, id)
	case DomainVenue:
		err = s.publishVenue(ctx, tx, id)
	case DomainApplication:
		err = s.promoteApplicant(ctx, tx, id)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// Reject flips a pending submission to rejected. No side effect.
func (s *PgStore) Reject(ctx context.Context, domain Domain, id, reviewerID uuid.UUID, notes string) (*Outcome, error) {
	dt, ok := domainTables[domain]
	if !ok {
		return nil, fmt.Errorf("unknown submission domain %q", domain)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	out, err := s.decide(ctx, tx, dt, id, reviewerID, notes, models.StatusRejected)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// decide is the shared guarded status flip. The WHERE status = 'pending'
// clause is what makes each submission decidable at most once.
func (s *PgStore) decide(ctx context.Context, tx pgx.Tx, dt domainTable, id, reviewerID uuid.UUID, notes string, to models.SubmissionStatus) (*Outcome, error) {
	q := fmt.Sprintf(`
		UPDATE %s t SET
			status = $2,
			admin_notes = NULLIF($3, ''),
			reviewed_by = $4,
			reviewed_at = NOW()
		FROM profiles p
		WHERE t.id = $1 AND t.status = 'pending' AND p.id = t.%s
		RETURNING %s, p.email, p.display_name`, dt.table, dt.byColumn, dt.titleExpr)

	var out Outcome
	err := tx.QueryRow(ctx, q, id, string(to), notes, reviewerID).
		Scan(&out.Title, &out.SubmitterEmail, &out.SubmitterName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, s.reviewConflict(ctx, tx, dt.table, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", dt.table, err)
	}
	return &out, nil
}

// rowQuerier is the slice of pgx.Tx that reviewConflict needs.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// reviewConflict distinguishes a missing submission from one already decided.
func (s *PgStore) reviewConflict(ctx context.Context, tx rowQuerier, table string, id uuid.UUID) error {
	var status string
	err := tx.QueryRow(ctx, fmt.Sprintf(`SELECT status FROM %s WHERE id = $1`, table), id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return ErrAlreadyReviewed
}

func (s *PgStore) publishResource(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	const q = `
		INSERT INTO resources
			(title, author, resource_type, category, description, content, url, tags, image_url, published_by)
		SELECT title, author, resource_type, category, description, content, url, tags, image_url, submitted_by
		FROM resource_submissions WHERE id = $1`
	if _, err := tx.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("publish resource: %w", err)
	}
	return nil
}

func (s *PgStore) publishVenue(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	const q = `
		INSERT INTO venues
			(name, location, capacity, contact_info, cost_level, notes, image_url, owner_id)
		SELECT name, location, capacity, contact_info, cost_level, notes, image_url, submitted_by
		FROM venue_submissions WHERE id = $1`
	if _, err := tx.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("publish venue: %w", err)
	}
	return nil
}

// promoteApplicant sets the applicant's role to facilitator. Only the role
// changes, and never downward: an applicant who became admin in the meantime
// keeps admin.
func (s *PgStore) promoteApplicant(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	const q = `
		UPDATE profiles SET role = 'facilitator', updated_at = NOW()
		WHERE id = (SELECT applicant_id FROM facilitator_applications WHERE id = $1)
		  AND role = 'user'`
	if _, err := tx.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("promote applicant: %w", err)
	}
	return nil
}

// CreateResource inserts a resource submission in the pending state.
func (s *PgStore) CreateResource(ctx context.Context, sub *models.ResourceSubmission) error {
	const q = `
		INSERT INTO resource_submissions
			(title, author, resource_type, category, description, content, url, tags, image_url, submitted_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''), $10)
		RETURNING id, status, submitted_at`
	err := s.pool.QueryRow(ctx, q,
		sub.Title, sub.Author, string(sub.Type), sub.Category, sub.Description,
		sub.Content, sub.URL, sub.Tags, sub.ImageURL, sub.SubmittedBy,
	).Scan(&sub.ID, &sub.Status, &sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert resource submission: %w", err)
	}
	return nil
}

// CreateVenue inserts a venue submission in the pending state.
func (s *PgStore) CreateVenue(ctx context.Context, sub *models.VenueSubmission) error {
	const q = `
		INSERT INTO venue_submissions
			(name, location, capacity, contact_info, cost_level, notes, image_url, submitted_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING id, status, submitted_at`
	err := s.pool.QueryRow(ctx, q,
		sub.Name, sub.Location, sub.Capacity, sub.ContactInfo, string(sub.CostLevel),
		sub.Notes, sub.ImageURL, sub.SubmittedBy,
	).Scan(&sub.ID, &sub.Status, &sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert venue submission: %w", err)
	}
	return nil
}

// CreateApplication inserts a facilitator application in the pending state.
// A second application while one is pending returns ErrPendingApplication.
func (s *PgStore) CreateApplication(ctx context.Context, app *models.FacilitatorApplication) error {
	const q = `
		INSERT INTO facilitator_applications
			(applicant_id, experience, title, bio, years_of_experience, certifications,
			 work_types, languages, availability, reference_info, contact_email, website)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8,
			NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''))
		RETURNING id, status, submitted_at`
	err := s.pool.QueryRow(ctx, q,
		app.ApplicantID, app.Experience, app.Title, app.Bio, app.YearsOfExperience,
		app.Certifications, app.WorkTypes, app.Languages, app.Availability,
		app.ReferenceInfo, app.ContactEmail, app.Website,
	).Scan(&app.ID, &app.Status, &app.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrPendingApplication
		}
		return fmt.Errorf("insert facilitator application: %w", err)
	}
	return nil
}

// PendingResources lists pending resource submissions, newest first.
func (s *PgStore) PendingResources(ctx context.Context) ([]models.ResourceSubmission, error) {
	const q = `
		SELECT s.id, s.title, s.author, s.resource_type, s.category, s.description,
		       COALESCE(s.content, ''), COALESCE(s.url, ''), s.tags, COALESCE(s.image_url, ''),
		       s.submitted_by, s.status, COALESCE(s.admin_notes, ''), s.submitted_at,
		       p.display_name
		FROM resource_submissions s
		JOIN profiles p ON p.id = s.submitted_by
		WHERE s.status = 'pending'
		ORDER BY s.submitted_at DESC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list pending resources: %w", err)
	}
	defer rows.Close()

	var out []models.ResourceSubmission
	for rows.Next() {
		var sub models.ResourceSubmission
		if err := rows.Scan(&sub.ID, &sub.Title, &sub.Author, &sub.Type, &sub.Category,
			&sub.Description, &sub.Content, &sub.URL, &sub.Tags, &sub.ImageURL,
			&sub.SubmittedBy, &sub.Status, &sub.AdminNotes, &sub.SubmittedAt,
			&sub.SubmitterName); err != nil {
			return nil, fmt.Errorf("scan resource submission: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// PendingVenues lists pending venue submissions, newest first.
func (s *PgStore) PendingVenues(ctx context.Context) ([]models.VenueSubmission, error) {
	const q = `
		SELECT s.id, s.name, s.location, s.capacity, s.contact_info, s.cost_level,
		       COALESCE(s.notes, ''), COALESCE(s.image_url, ''),
		       s.submitted_by, s.status, COALESCE(s.admin_notes, ''), s.submitted_at,
		       p.display_name
		FROM venue_submissions s
		JOIN profiles p ON p.id = s.submitted_by
		WHERE s.status = 'pending'
		ORDER BY s.submitted_at DESC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list pending venues: %w", err)
	}
	defer rows.Close()

	var out []models.VenueSubmission
	for rows.Next() {
		var sub models.VenueSubmission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Location, &sub.Capacity,
			&sub.ContactInfo, &sub.CostLevel, &sub.Notes, &sub.ImageURL,
			&sub.SubmittedBy, &sub.Status, &sub.AdminNotes, &sub.SubmittedAt,
			&sub.SubmitterName); err != nil {
			return nil, fmt.Errorf("scan venue submission: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// PendingApplications lists pending facilitator applications, newest first.
func (s *PgStore) PendingApplications(ctx context.Context) ([]models.FacilitatorApplication, error) {
	const q = `
		SELECT a.id, a.applicant_id, a.experience, COALESCE(a.title, ''), COALESCE(a.bio, ''),
		       COALESCE(a.years_of_experience, 0), a.certifications, a.work_types, a.languages,
		       COALESCE(a.availability, ''), COALESCE(a.reference_info, ''),
		       COALESCE(a.contact_email, ''), COALESCE(a.website, ''),
		       a.status, COALESCE(a.admin_notes, ''), a.submitted_at,
		       p.display_name
		FROM facilitator_applications a
		JOIN profiles p ON p.id = a.applicant_id
		WHERE a.status = 'pending'
		ORDER BY a.submitted_at DESC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list pending applications: %w", err)
	}
	defer rows.Close()

	var out []models.FacilitatorApplication
	for rows.Next() {
		var app models.FacilitatorApplication
		if err := rows.Scan(&app.ID, &app.ApplicantID, &app.Experience, &app.Title, &app.Bio,
			&app.YearsOfExperience, &app.Certifications, &app.WorkTypes, &app.Languages,
			&app.Availability, &app.ReferenceInfo, &app.ContactEmail, &app.Website,
			&app.Status, &app.AdminNotes, &app.SubmittedAt,
			&app.SubmitterName); err != nil {
			return nil, fmt.Errorf("scan facilitator application: %w", err)
		}
		out = append(out, app)
	}
	return out, rows.Err()
}
