// Package documents is the catalog behind the dashboard. Documents are not
// served by the GED API yet, so the only Catalog is a fixed one.
package documents

import (
	"context"
	"strings"
	"time"
)

// Status is where a document stands in its review workflow.
type Status string

const (
	// StatusValidated marks a document approved for use.
	StatusValidated Status = "Validé"
	// StatusDraft marks a document still being written.
	StatusDraft Status = "Brouillon"
	// StatusReview marks a document awaiting approval.
	StatusReview Status = "En révision"
)

// Class returns the style class the dashboard shows the status with.
func (s Status) Class() string {
	switch s {
	case StatusValidated:
		return "status-validated"
	case StatusDraft:
		return "status-draft"
	case StatusReview:
		return "status-review"
	}
	return ""
}

// AllCategories selects every category.
const AllCategories = "all"

// Document is one row of the dashboard.
type Document struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Size     string    `json:"size"`
	Modified time.Time `json:"modified"`
	Author   string    `json:"author"`
	Status   Status    `json:"status"`
}

// Stat is one of the figures at the top of the dashboard.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	// Query matches names and authors, ignoring case.
	Query string
	// Category is a category name or AllCategories.
	Category string
}

func (f Filter) matches(doc Document) bool {
	if f.Category != "" && f.Category != AllCategories &&
		f.Category != doc.Category {
		return false
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(doc.Name), query) ||
		strings.Contains(strings.ToLower(doc.Author), query)
}

// Catalog lists documents and the dashboard figures.
type Catalog interface {
	// Categories returns AllCategories followed by every category name.
	Categories() []string
	List(context.Context, Filter) ([]Document, error)
	Stats(context.Context) ([]Stat, error)
}
