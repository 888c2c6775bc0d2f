package document

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/authz"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML flattens document content to plain text for search matching, so
// a query never matches inside tag names or attributes.
func stripHTML(content string) string {
	return htmlTagPattern.ReplaceAllString(content, " ")
}

func matchesSearch(doc *Document, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(stripHTML(doc.Content)), q)
}

func (s *Service) decorate(session *auth.Session, doc *Document) View {
	view := View{Document: *doc}
	if session == nil {
		return view
	}
	deptID := session.User.DepartmentID
	role := session.RoleOrNil()
	view.CanUpdate = authz.AuthorizeDocumentAction(deptID, role, doc.IssuingDepartmentID, permission.OpUpdate) == nil
	view.CanDelete = authz.AuthorizeDocumentAction(deptID, role, doc.IssuingDepartmentID, permission.OpDelete) == nil
	return view
}

// List returns the documents the caller may see, filtered and decorated with
// per-document affordances. Anonymous callers (nil session) get the public
// view: active documents only, no affordances.
func (s *Service) List(session *auth.Session, filter ListFilter) ([]View, error) {
	docs, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	role := session.RoleOrNil()
	result := make([]View, 0, len(docs))
	for _, doc := range docs {
		if !authz.CanViewDocument(role, doc.IsSuspended()) {
			continue
		}
		if filter.CategoryID != "" && doc.CategoryID != filter.CategoryID {
			continue
		}
		if filter.DepartmentID != "" && doc.IssuingDepartmentID != filter.DepartmentID {
			continue
		}
		if !matchesSearch(doc, filter.Search) {
			continue
		}
		result = append(result, s.decorate(session, doc))
	}
	return result, nil
}

func (s *Service) Get(session *auth.Session, id string) (*View, error) {
	doc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewDocument(session.RoleOrNil(), doc.IsSuspended()) {
		return nil, internal.ErrDocumentNotFound
	}
	view := s.decorate(session, doc)
	return &view, nil
}

func (s *Service) Create(session *auth.Session, dto CreateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := authz.AuthorizeDocumentAction(session.User.DepartmentID, session.RoleOrNil(), dto.IssuingDepartmentID, permission.OpCreate); err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &Document{
		ID:                  uuid.New().String(),
		Title:               dto.Title,
		Content:             dto.Content,
		CategoryID:          dto.CategoryID,
		IssuingDepartmentID: dto.IssuingDepartmentID,
		Status:              DocumentStatusActive,
		Attachments:         dto.Attachments,
		CreatedAt:           now,
		LastUpdated:         now,
	}

	if err := s.repo.Create(doc); err != nil {
		return nil, err
	}

	s.recordActivity(session, fmt.Sprintf("Created document: %s", doc.Title))
	return doc, nil
}

func (s *Service) Update(session *auth.Session, id string, dto UpdateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Ownership is judged against the department that issued the document,
	// not the one the edit would move it to.
	if err := authz.AuthorizeDocumentAction(session.User.DepartmentID, session.RoleOrNil(), doc.IssuingDepartmentID, permission.OpUpdate); err != nil {
		return nil, err
	}

	doc.Title = dto.Title
	doc.Content = dto.Content
	doc.CategoryID = dto.CategoryID
	doc.IssuingDepartmentID = dto.IssuingDepartmentID
	doc.Attachments = dto.Attachments
	doc.LastUpdated = time.Now()

	if err := s.repo.Update(doc); err != nil {
		return nil, err
	}

	s.recordActivity(session, fmt.Sprintf("Updated document: %s", doc.Title))
	return doc, nil
}

// ToggleStatus flips a document between active and suspended. It is an
// update for authorization purposes, so the ownership rule applies.
func (s *Service) ToggleStatus(session *auth.Session, id string) (*Document, error) {
	doc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := authz.AuthorizeDocumentAction(session.User.DepartmentID, session.RoleOrNil(), doc.IssuingDepartmentID, permission.OpUpdate); err != nil {
		return nil, err
	}

	action := "Suspended"
	if doc.IsSuspended() {
		doc.Status = DocumentStatusActive
		action = "Activated"
	} else {
		doc.Status = DocumentStatusSuspended
	}

	if err := s.repo.Update(doc); err != nil {
		return nil, err
	}

	s.recordActivity(session, fmt.Sprintf("%s document: %s", action, doc.Title))
	return doc, nil
}

func (s *Service) Delete(session *auth.Session, id string) error {
	doc, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := authz.AuthorizeDocumentAction(session.User.DepartmentID, session.RoleOrNil(), doc.IssuingDepartmentID, permission.OpDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recordActivity(session, fmt.Sprintf("Deleted document: %s", doc.Title))
	return nil
}

func (s *Service) recordActivity(session *auth.Session, action string) {
	if s.eventBus == nil || session.UserName() == "" {
		return
	}
	s.eventBus.PublishSync(context.Background(), events.NewActivityRecordedEvent(session.UserName(), action))
}
