package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("user"))
	assert.True(t, ValidRole("facilitator"))
	assert.True(t, ValidRole("admin"))
	assert.False(t, ValidRole("superadmin"))
	assert.False(t, ValidRole(""))
}

func TestValidEventType(t *testing.T) {
	assert.True(t, ValidEventType("workshop"))
	assert.True(t, ValidEventType("group_session"))
	assert.True(t, ValidEventType("retreat"))
	assert.False(t, ValidEventType("webinar"))
}

func TestValidResourceCategory(t *testing.T) {
	for _, c := range ResourceCategories {
		assert.True(t, ValidResourceCategory(c), c)
	}
	assert.False(t, ValidResourceCategory("astrology"))
	assert.False(t, ValidResourceCategory(""))
}

func TestValidCostLevel(t *testing.T) {
	assert.True(t, ValidCostLevel("free"))
	assert.True(t, ValidCostLevel("high"))
	assert.False(t, ValidCostLevel("priceless"))
}

func TestProfileToPublic(t *testing.T) {
	p := Profile{
		DisplayName:  "Ana Marin",
		Email:        "ana@example.com",
		PasswordHash: "secret-hash",
		Role:         RoleFacilitator,
		Bio:          "Breathwork teacher.",
	}
	pub := p.ToPublic()
	assert.Equal(t, "Ana Marin", pub.DisplayName)
	assert.Equal(t, "Breathwork teacher.", pub.Bio)
}
