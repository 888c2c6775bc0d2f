// Package dashboard aggregates the overview numbers the console's landing
// view shows: collection counts, documents broken down by category and
// department, the newest documents and the latest activity.
package dashboard

import (
	"github.com/tranyenminhbd/docuflow/internal/activity"
	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/document"
)

// Bucket is one bar of a breakdown chart.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Summary struct {
	DocumentCount   int `json:"document_count"`
	CategoryCount   int `json:"category_count"`
	DepartmentCount int `json:"department_count"`

	DocumentsByCategory   []Bucket `json:"documents_by_category"`
	DocumentsByDepartment []Bucket `json:"documents_by_department"`

	RecentDocuments []document.View  `json:"recent_documents"`
	RecentActivity  []activity.Entry `json:"recent_activity"`
}

type ServiceAPI interface {
	// Summarize builds the overview for the given session; document numbers
	// only cover what that session may see.
	Summarize(session *auth.Session) (*Summary, error)
}
