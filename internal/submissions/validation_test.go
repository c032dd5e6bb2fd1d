package submissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceRequestValidate(t *testing.T) {
	valid := resourceRequest{
		Title:       "Breath and Stillness",
		Author:      "Ana Marin",
		Type:        "article",
		Category:    "breathwork",
		Description: "A short practice guide.",
		Content:     "Sit comfortably...",
	}

	tests := []struct {
		name   string
		mutate func(r *resourceRequest)
		want   string
	}{
		{"valid article", func(r *resourceRequest) {}, ""},
		{"valid link", func(r *resourceRequest) {
			r.Type = "link"
			r.Content = ""
			r.URL = "https://example.com/guide"
		}, ""},
		{"missing title", func(r *resourceRequest) { r.Title = "  " }, "title is required"},
		{"missing author", func(r *resourceRequest) { r.Author = "" }, "author is required"},
		{"missing description", func(r *resourceRequest) { r.Description = "" }, "description is required"},
		{"bad category", func(r *resourceRequest) { r.Category = "astrology" }, "unknown category"},
		{"bad type", func(r *resourceRequest) { r.Type = "video" }, "type must be article or link"},
		{"article without content", func(r *resourceRequest) { r.Content = "" }, "articles require content"},
		{"article with url", func(r *resourceRequest) { r.URL = "https://example.com" }, "articles must not have a url"},
		{"link without url", func(r *resourceRequest) {
			r.Type = "link"
			r.Content = ""
		}, "links require a url"},
		{"link with content", func(r *resourceRequest) {
			r.Type = "link"
			r.URL = "https://example.com"
		}, "links must not have content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.Equal(t, tt.want, r.validate())
		})
	}
}

func TestVenueRequestValidate(t *testing.T) {
	valid := venueRequest{
		Name:        "Quiet Room",
		Location:    "12 Mill Lane",
		Capacity:    20,
		ContactInfo: "rooms@example.com",
		CostLevel:   "low",
	}

	tests := []struct {
		name   string
		mutate func(r *venueRequest)
		want   string
	}{
		{"valid", func(r *venueRequest) {}, ""},
		{"missing name", func(r *venueRequest) { r.Name = "" }, "name is required"},
		{"missing location", func(r *venueRequest) { r.Location = " " }, "location is required"},
		{"zero capacity", func(r *venueRequest) { r.Capacity = 0 }, "capacity must be at least 1"},
		{"missing contact", func(r *venueRequest) { r.ContactInfo = "" }, "contact info is required"},
		{"bad cost level", func(r *venueRequest) { r.CostLevel = "expensive" }, "cost level must be free, low, medium or high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.Equal(t, tt.want, r.validate())
		})
	}
}
