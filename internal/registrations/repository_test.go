package registrations

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyRegisterError(t *testing.T) {
	dbDown := errors.New("connection refused")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"duplicate active registration", &pgconn.PgError{Code: "23505"}, ErrAlreadyRegistered},
		{"wrapped duplicate", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrAlreadyRegistered},
		{"capacity guard kept row out", pgx.ErrNoRows, ErrEventFull},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrEventFull},
		{"other constraint passes through", &pgconn.PgError{Code: "23503"}, nil},
		{"infrastructure error passes through", dbDown, dbDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyRegisterError(tt.in)
			if tt.want == nil {
				assert.Equal(t, tt.in, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
