package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stillpoint-community/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestValidateUpdate(t *testing.T) {
	article := &models.Resource{
		Title:       "Breath and Stillness",
		Author:      "Ana Marin",
		Type:        models.ResourceArticle,
		Category:    "breathwork",
		Description: "A short practice guide.",
		Content:     "Sit comfortably...",
	}
	link := &models.Resource{
		Title:       "Community Sits Calendar",
		Author:      "Ana Marin",
		Type:        models.ResourceLink,
		Category:    "community",
		Description: "Where to find a group.",
		URL:         "https://example.com/sits",
	}

	tests := []struct {
		name string
		res  *models.Resource
		req  updateRequest
		want string
	}{
		{"empty patch keeps article valid", article, updateRequest{}, ""},
		{"empty patch keeps link valid", link, updateRequest{}, ""},
		{"retitle article", article, updateRequest{Title: strPtr("Stillness")}, ""},
		{"swap link url", link, updateRequest{URL: strPtr("https://example.com/groups")}, ""},
		{"url onto article", article, updateRequest{URL: strPtr("https://example.com")}, "articles must not have a url"},
		{"content onto link", link, updateRequest{Content: strPtr("pasted text")}, "links must not have content"},
		{"clear article content", article, updateRequest{Content: strPtr("")}, "articles require content"},
		{"clear link url", link, updateRequest{URL: strPtr("")}, "links require a url"},
		{"clear title", article, updateRequest{Title: strPtr("  ")}, "title is required"},
		{"bad category", article, updateRequest{Category: strPtr("astrology")}, "unknown category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			assert.Equal(t, tt.want, validateUpdate(tt.res, &req))
		})
	}
}
