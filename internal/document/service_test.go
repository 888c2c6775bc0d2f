package document

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

func TestDocument(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Document Module Suite")
}

type mockRepository struct {
	docs map[string]*Document
}

func newMockRepository() *mockRepository {
	return &mockRepository{docs: map[string]*Document{}}
}

func (m *mockRepository) Create(doc *Document) error {
	copied := *doc
	m.docs[doc.ID] = &copied
	return nil
}

func (m *mockRepository) GetByID(id string) (*Document, error) {
	if doc, ok := m.docs[id]; ok {
		copied := *doc
		return &copied, nil
	}
	return nil, internal.ErrDocumentNotFound
}

func (m *mockRepository) GetAll() ([]*Document, error) {
	docs := make([]*Document, 0, len(m.docs))
	for _, doc := range m.docs {
		copied := *doc
		docs = append(docs, &copied)
	}
	return docs, nil
}

func (m *mockRepository) Update(doc *Document) error {
	copied := *doc
	m.docs[doc.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(id string) error {
	delete(m.docs, id)
	return nil
}

func staffRole(editOthers bool) *permission.Role {
	return &permission.Role{
		ID:   "role-staff",
		Name: "Staff",
		Permissions: permission.RolePermissions{
			Documents: permission.DocumentPermissions{
				PermissionSet: permission.FullAccess(),
				EditOthers:    editOthers,
			},
		},
	}
}

func sessionFor(deptID string, role *permission.Role) *auth.Session {
	return &auth.Session{
		User: &auth.User{
			ID:           "user-1",
			Name:         "Alice Nguyen",
			DepartmentID: deptID,
			Status:       auth.UserStatusActive,
		},
		Role: role,
	}
}

var _ = ginkgo.Describe("DocumentService", func() {
	var (
		service    *Service
		repo       *mockRepository
		activities []string
	)

	hrSession := func(editOthers bool) *auth.Session {
		return sessionFor("dept-hr", staffRole(editOthers))
	}

	createDTO := func(title string) CreateDocumentDTO {
		return CreateDocumentDTO{
			Title:               title,
			Content:             "<p>Body</p>",
			CategoryID:          "cat-policy",
			IssuingDepartmentID: "dept-hr",
		}
	}

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		activities = nil

		bus := events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		bus.Subscribe(events.EventTypeActivityRecorded, func(ctx context.Context, event events.Event) error {
			if e, ok := event.(*events.ActivityRecordedEvent); ok {
				activities = append(activities, e.Action)
			}
			return nil
		})

		service = NewService(repo, bus)
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should stamp id, timestamps and active status", func() {
			before := time.Now()
			doc, err := service.Create(hrSession(false), createDTO("Leave Policy"))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(doc.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(doc.Status).To(gomega.Equal(DocumentStatusActive))
			gomega.Expect(doc.CreatedAt).To(gomega.BeTemporally(">=", before))
			gomega.Expect(doc.LastUpdated).To(gomega.Equal(doc.CreatedAt))
		})

		ginkgo.It("should record a creation activity entry", func() {
			_, err := service.Create(hrSession(false), createDTO("Leave Policy"))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(activities).To(gomega.ConsistOf("Created document: Leave Policy"))
		})

		ginkgo.It("should reject a caller without documents.create", func() {
			session := sessionFor("dept-hr", &permission.Role{ID: "role-viewer"})
			_, err := service.Create(session, createDTO("Leave Policy"))

			gomega.Expect(err).To(gomega.Equal(internal.ErrPermissionDenied))
			gomega.Expect(activities).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject an invalid attachment type", func() {
			dto := createDTO("Leave Policy")
			dto.Attachments = []Attachment{{ID: "att-1", Name: "notes", Type: "exe", URL: "https://example.com/x"}}
			_, err := service.Create(hrSession(false), dto)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Update", func() {
		var docID string

		ginkgo.BeforeEach(func() {
			doc, err := service.Create(hrSession(false), createDTO("Leave Policy"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			docID = doc.ID
			activities = nil
		})

		ginkgo.It("should refresh last_updated but keep created_at", func() {
			original, _ := repo.GetByID(docID)
			time.Sleep(5 * time.Millisecond)

			updated, err := service.Update(hrSession(false), docID, UpdateDocumentDTO{
				Title:               "Leave Policy v2",
				Content:             "<p>Updated</p>",
				CategoryID:          "cat-policy",
				IssuingDepartmentID: "dept-hr",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.CreatedAt).To(gomega.Equal(original.CreatedAt))
			gomega.Expect(updated.LastUpdated).To(gomega.BeTemporally(">", original.LastUpdated))
		})

		ginkgo.It("should refuse a foreign department without the override", func() {
			salesSession := sessionFor("dept-sales", staffRole(false))
			_, err := service.Update(salesSession, docID, UpdateDocumentDTO{
				Title:               "Hijacked",
				CategoryID:          "cat-policy",
				IssuingDepartmentID: "dept-hr",
			})

			gomega.Expect(err).To(gomega.Equal(internal.ErrNotDocumentOwner))
		})

		ginkgo.It("should allow a foreign department with the override", func() {
			salesSession := sessionFor("dept-sales", staffRole(true))
			_, err := service.Update(salesSession, docID, UpdateDocumentDTO{
				Title:               "Cross-team edit",
				CategoryID:          "cat-policy",
				IssuingDepartmentID: "dept-hr",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(activities).To(gomega.ConsistOf("Updated document: Cross-team edit"))
		})
	})

	ginkgo.Describe("ToggleStatus", func() {
		var docID string

		ginkgo.BeforeEach(func() {
			doc, err := service.Create(hrSession(false), createDTO("Leave Policy"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			docID = doc.ID
			activities = nil
		})

		ginkgo.It("should flip active to suspended and back", func() {
			doc, err := service.ToggleStatus(hrSession(false), docID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(doc.Status).To(gomega.Equal(DocumentStatusSuspended))

			doc, err = service.ToggleStatus(hrSession(false), docID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(doc.Status).To(gomega.Equal(DocumentStatusActive))

			gomega.Expect(activities).To(gomega.Equal([]string{
				"Suspended document: Leave Policy",
				"Activated document: Leave Policy",
			}))
		})

		ginkgo.It("should apply the ownership rule like any other update", func() {
			salesSession := sessionFor("dept-sales", staffRole(false))
			_, err := service.ToggleStatus(salesSession, docID)

			gomega.Expect(err).To(gomega.Equal(internal.ErrNotDocumentOwner))
		})

		ginkgo.It("should leave last_updated untouched, unlike a content edit", func() {
			edited := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			stored, err := repo.GetByID(docID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			stored.LastUpdated = edited
			gomega.Expect(repo.Update(stored)).To(gomega.Succeed())

			doc, err := service.ToggleStatus(hrSession(false), docID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(doc.Status).To(gomega.Equal(DocumentStatusSuspended))
			gomega.Expect(doc.LastUpdated).To(gomega.Equal(edited))
		})
	})

	ginkgo.Describe("Delete", func() {
		var docID string

		ginkgo.BeforeEach(func() {
			doc, err := service.Create(hrSession(false), createDTO("Leave Policy"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			docID = doc.ID
			activities = nil
		})

		ginkgo.It("should remove the document and record the deletion", func() {
			err := service.Delete(hrSession(false), docID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = repo.GetByID(docID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrDocumentNotFound))
			gomega.Expect(activities).To(gomega.ConsistOf("Deleted document: Leave Policy"))
		})

		ginkgo.It("should refuse a foreign department without the override", func() {
			salesSession := sessionFor("dept-sales", staffRole(false))
			err := service.Delete(salesSession, docID)

			gomega.Expect(err).To(gomega.Equal(internal.ErrNotDocumentOwner))
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Create(hrSession(false), createDTO("Leave Policy"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			suspended, err := service.Create(hrSession(false), createDTO("Old Handbook"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.ToggleStatus(hrSession(false), suspended.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should hide suspended documents from anonymous callers", func() {
			docs, err := service.List(nil, ListFilter{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.HaveLen(1))
			gomega.Expect(docs[0].Title).To(gomega.Equal("Leave Policy"))
			gomega.Expect(docs[0].CanUpdate).To(gomega.BeFalse())
			gomega.Expect(docs[0].CanDelete).To(gomega.BeFalse())
		})

		ginkgo.It("should hide suspended documents from roles without documents.update", func() {
			viewer := sessionFor("dept-hr", &permission.Role{
				ID: "role-viewer",
				Permissions: permission.RolePermissions{
					Documents: permission.DocumentPermissions{PermissionSet: permission.ReadOnly()},
				},
			})
			docs, err := service.List(viewer, ListFilter{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.HaveLen(1))
		})

		ginkgo.It("should show suspended documents to roles with documents.update", func() {
			docs, err := service.List(hrSession(false), ListFilter{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.HaveLen(2))
		})

		ginkgo.It("should mark ownership-limited documents as read-only for foreign staff", func() {
			salesSession := sessionFor("dept-sales", staffRole(false))
			docs, err := service.List(salesSession, ListFilter{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			for _, doc := range docs {
				gomega.Expect(doc.CanUpdate).To(gomega.BeFalse())
				gomega.Expect(doc.CanDelete).To(gomega.BeFalse())
			}
		})

		ginkgo.It("should search titles case-insensitively", func() {
			docs, err := service.List(hrSession(false), ListFilter{Search: "leave"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.HaveLen(1))
			gomega.Expect(docs[0].Title).To(gomega.Equal("Leave Policy"))
		})

		ginkgo.It("should search content with markup stripped", func() {
			_, err := service.Create(hrSession(false), CreateDocumentDTO{
				Title:               "Onboarding",
				Content:             "<div class=\"strongly\">welcome aboard</div>",
				CategoryID:          "cat-guide",
				IssuingDepartmentID: "dept-hr",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			docs, err := service.List(hrSession(false), ListFilter{Search: "welcome"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.HaveLen(1))

			// "strongly" only appears inside a tag attribute, so no match.
			docs, err = service.List(hrSession(false), ListFilter{Search: "strongly"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.BeEmpty())
		})

		ginkgo.It("should filter by category and department", func() {
			docs, err := service.List(hrSession(false), ListFilter{CategoryID: "cat-policy"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.HaveLen(2))

			docs, err = service.List(hrSession(false), ListFilter{DepartmentID: "dept-sales"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(docs).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("Get", func() {
		ginkgo.It("should report not-found for a suspended document to the public", func() {
			doc, err := service.Create(hrSession(false), createDTO("Old Handbook"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.ToggleStatus(hrSession(false), doc.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Get(nil, doc.ID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrDocumentNotFound))
		})
	})
})
