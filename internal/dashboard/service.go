package dashboard

import (
	"sort"

	"github.com/tranyenminhbd/docuflow/internal/activity"
	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/category"
	"github.com/tranyenminhbd/docuflow/internal/department"
	"github.com/tranyenminhbd/docuflow/internal/document"
)

const (
	recentDocumentLimit = 5
	recentActivityLimit = 10
)

// The service only reads; it depends on the narrow read surface of each
// feature service rather than their full APIs.
type DocumentLister interface {
	List(session *auth.Session, filter document.ListFilter) ([]document.View, error)
}

type CategoryLister interface {
	List() ([]category.Category, error)
}

type DepartmentLister interface {
	List() ([]department.Department, error)
}

type ActivityReader interface {
	Recent() ([]activity.Entry, error)
}

type Service struct {
	documents   DocumentLister
	categories  CategoryLister
	departments DepartmentLister
	activity    ActivityReader
}

func NewService(
	documents DocumentLister,
	categories CategoryLister,
	departments DepartmentLister,
	activitySvc ActivityReader,
) *Service {
	return &Service{
		documents:   documents,
		categories:  categories,
		departments: departments,
		activity:    activitySvc,
	}
}

func (s *Service) Summarize(session *auth.Session) (*Summary, error) {
	docs, err := s.documents.List(session, document.ListFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	departments, err := s.departments.List()
	if err != nil {
		return nil, err
	}
	entries, err := s.activity.Recent()
	if err != nil {
		return nil, err
	}

	byCategory := make([]Bucket, 0, len(categories))
	for _, c := range categories {
		count := 0
		for _, d := range docs {
			if d.CategoryID == c.ID {
				count++
			}
		}
		byCategory = append(byCategory, Bucket{Label: c.Name, Count: count})
	}
	byDepartment := make([]Bucket, 0, len(departments))
	for _, dep := range departments {
		count := 0
		for _, d := range docs {
			if d.IssuingDepartmentID == dep.ID {
				count++
			}
		}
		byDepartment = append(byDepartment, Bucket{Label: dep.Name, Count: count})
	}
	sortBuckets(byCategory)
	sortBuckets(byDepartment)

	// The document list already comes newest-first.
	recentDocs := docs
	if len(recentDocs) > recentDocumentLimit {
		recentDocs = recentDocs[:recentDocumentLimit]
	}
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}

	return &Summary{
		DocumentCount:         len(docs),
		CategoryCount:         len(categories),
		DepartmentCount:       len(departments),
		DocumentsByCategory:   byCategory,
		DocumentsByDepartment: byDepartment,
		RecentDocuments:       recentDocs,
		RecentActivity:        entries,
	}, nil
}

func sortBuckets(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
}
