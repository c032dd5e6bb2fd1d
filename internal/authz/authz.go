// Package authz decides what a member may do with a given entity. The same
// checks gate both the HTTP routes and the handlers so that role enforcement
// never depends on a client hiding controls.
package authz

import (
	"github.com/google/uuid"

	"github.com/stillpoint-community/backend/internal/models"
)

// Capabilities describes what the current member may do with an entity
// owned by ownerID.
type Capabilities struct {
	CanView            bool
	CanEdit            bool
	CanPublishDirectly bool
	CanModerate        bool
}

// For computes capabilities for a member acting on an entity owned by ownerID.
// Admins may edit and moderate anything; owners may edit their own entities;
// facilitators and admins may publish without going through review.
func For(role models.Role, ownerID, userID uuid.UUID) Capabilities {
	caps := Capabilities{CanView: true}
	switch role {
	case models.RoleAdmin:
		caps.CanEdit = true
		caps.CanPublishDirectly = true
		caps.CanModerate = true
	case models.RoleFacilitator:
		caps.CanPublishDirectly = true
	}
	if ownerID != uuid.Nil && ownerID == userID {
		caps.CanEdit = true
	}
	return caps
}
