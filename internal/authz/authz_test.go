package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/stillpoint-community/backend/internal/models"
)

func TestFor(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		role    models.Role
		ownerID uuid.UUID
		userID  uuid.UUID
		want    Capabilities
	}{
		{
			name:    "admin can do everything",
			role:    models.RoleAdmin,
			ownerID: owner,
			userID:  other,
			want:    Capabilities{CanView: true, CanEdit: true, CanPublishDirectly: true, CanModerate: true},
		},
		{
			name:    "facilitator publishes directly but cannot edit others",
			role:    models.RoleFacilitator,
			ownerID: owner,
			userID:  other,
			want:    Capabilities{CanView: true, CanPublishDirectly: true},
		},
		{
			name:    "facilitator edits own entity",
			role:    models.RoleFacilitator,
			ownerID: owner,
			userID:  owner,
			want:    Capabilities{CanView: true, CanEdit: true, CanPublishDirectly: true},
		},
		{
			name:    "member edits own entity only",
			role:    models.RoleUser,
			ownerID: owner,
			userID:  owner,
			want:    Capabilities{CanView: true, CanEdit: true},
		},
		{
			name:    "member cannot touch others",
			role:    models.RoleUser,
			ownerID: owner,
			userID:  other,
			want:    Capabilities{CanView: true},
		},
		{
			name:    "nil owner never grants ownership",
			role:    models.RoleUser,
			ownerID: uuid.Nil,
			userID:  uuid.Nil,
			want:    Capabilities{CanView: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, For(tt.role, tt.ownerID, tt.userID))
		})
	}
}
