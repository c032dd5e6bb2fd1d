package submissions

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

type statusRow struct {
	status string
	err    error
}

func (r statusRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.status
	return nil
}

type statusQuerier struct {
	row statusRow
}

func (q statusQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.row
}

func TestReviewConflict(t *testing.T) {
	store := &PgStore{}
	id := uuid.New()

	tests := []struct {
		name string
		row  statusRow
		want error
	}{
		{"submission gone", statusRow{err: pgx.ErrNoRows}, ErrNotFound},
		{"already approved", statusRow{status: "approved"}, ErrAlreadyReviewed},
		{"already rejected", statusRow{status: "rejected"}, ErrAlreadyReviewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.reviewConflict(context.Background(), statusQuerier{row: tt.row}, "resource_submissions", id)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("infrastructure error is wrapped", func(t *testing.T) {
		dbDown := errors.New("connection refused")
		err := store.reviewConflict(context.Background(), statusQuerier{row: statusRow{err: dbDown}}, "resource_submissions", id)
		assert.ErrorIs(t, err, dbDown)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrAlreadyReviewed)
	})
}
