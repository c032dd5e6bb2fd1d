package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResourceType distinguishes long-form articles from external links.
type ResourceType string

const (
	ResourceArticle ResourceType = "article"
	ResourceLink    ResourceType = "link"
)

// ResourceCategories is the closed set of accepted resource categories.
var ResourceCategories = []string{
	"meditation",
	"breathwork",
	"philosophy",
	"science",
	"practice_guides",
	"community",
	"ethics",
	"wellbeing",
}

// ValidResourceCategory reports whether s is an accepted category.
func ValidResourceCategory(s string) bool {
	for _, c := range ResourceCategories {
		if c == s {
			return true
		}
	}
	return false
}

// ValidateResourceFields checks the shared fields of a resource or resource
// submission. Articles carry content and no url; links the reverse. Returns
// an empty string when valid, otherwise a message suitable for the client.
func ValidateResourceFields(title, author, description, category, typ, content, url string) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if strings.TrimSpace(author) == "" {
		return "author is required"
	}
	if strings.TrimSpace(description) == "" {
		return "description is required"
	}
	if !ValidResourceCategory(category) {
		return "unknown category"
	}
	switch ResourceType(typ) {
	case ResourceArticle:
		if strings.TrimSpace(content) == "" {
			return "articles require content"
		}
		if url != "" {
			return "articles must not have a url"
		}
	case ResourceLink:
		if strings.TrimSpace(url) == "" {
			return "links require a url"
		}
		if content != "" {
			return "links must not have content"
		}
	default:
		return "type must be article or link"
	}
	return ""
}

// Resource is a published library entry. Exactly one of Content and URL is
// populated: articles carry Content, links carry URL.
type Resource struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Type        ResourceType `json:"type"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Content     string       `json:"content,omitempty"`
	URL         string       `json:"url,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	PublishedBy uuid.UUID    `json:"published_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ResourceSubmission is a member-authored resource awaiting review.
type ResourceSubmission struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author"`
	Type        ResourceType `json:"type"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Content     string       `json:"content,omitempty"`
	URL         string       `json:"url,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	SubmittedBy uuid.UUID    `json:"submitted_by"`
	Review

	// SubmitterName is filled on admin listings that join profiles.
	SubmitterName string `json:"submitter_name,omitempty"`
}
