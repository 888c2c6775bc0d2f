package role

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

func TestRole(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Role Module Suite")
}

type mockRepository struct {
	roles map[string]*Role
}

func newMockRepository() *mockRepository {
	return &mockRepository{roles: map[string]*Role{}}
}

func (m *mockRepository) Create(r *Role) error {
	copied := *r
	m.roles[r.ID] = &copied
	return nil
}

func (m *mockRepository) GetByID(id string) (*Role, error) {
	if r, ok := m.roles[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, internal.ErrRoleNotFound
}

func (m *mockRepository) GetAll() ([]*Role, error) {
	roles := make([]*Role, 0, len(m.roles))
	for _, r := range m.roles {
		copied := *r
		roles = append(roles, &copied)
	}
	return roles, nil
}

func (m *mockRepository) Update(r *Role) error {
	copied := *r
	m.roles[r.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(id string) error {
	delete(m.roles, id)
	return nil
}

var _ = ginkgo.Describe("RoleService", func() {
	var (
		service    *Service
		repo       *mockRepository
		activities []string
	)

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
		ginkgo.It("should persist the full permission matrix", func() {
			r, err := service.Create("Admin", RoleDTO{
				Name: "Editor",
				Permissions: permission.RolePermissions{
					Documents: permission.DocumentPermissions{
						PermissionSet: permission.FullAccess(),
						EditOthers:    true,
					},
					Categories: permission.ReadOnly(),
				},
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(r.Permissions.Documents.EditOthers).To(gomega.BeTrue())
			gomega.Expect(r.Permissions.Categories.Read).To(gomega.BeTrue())
			gomega.Expect(r.Permissions.Users.Read).To(gomega.BeFalse())
			gomega.Expect(activities).To(gomega.ConsistOf("Created role: Editor"))
		})

		ginkgo.It("should reject a nameless role", func() {
			_, err := service.Create("Admin", RoleDTO{})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should replace the matrix wholesale", func() {
			r, err := service.Create("Admin", RoleDTO{
				Name:        "Editor",
				Permissions: permission.RolePermissions{Categories: permission.FullAccess()},
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			updated, err := service.Update("Admin", r.ID, RoleDTO{
				Name:        "Editor",
				Permissions: permission.RolePermissions{Users: permission.ReadOnly()},
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Permissions.Categories.Create).To(gomega.BeFalse())
			gomega.Expect(updated.Permissions.Users.Read).To(gomega.BeTrue())
		})

		ginkgo.It("should refuse to touch the super admin role", func() {
			_, err := service.Update("Admin", permission.SuperAdminRoleID, RoleDTO{Name: "Renamed"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrPermissionDenied))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should refuse to delete the super admin role", func() {
			err := service.Delete("Admin", permission.SuperAdminRoleID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrPermissionDenied))
		})

		ginkgo.It("should delete an ordinary role and record it", func() {
			r, err := service.Create("Admin", RoleDTO{Name: "Editor"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			activities = nil

			gomega.Expect(service.Delete("Admin", r.ID)).To(gomega.Succeed())
			_, err = repo.GetByID(r.ID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrRoleNotFound))
			gomega.Expect(activities).To(gomega.ConsistOf("Deleted role: Editor"))
		})
	})
})
