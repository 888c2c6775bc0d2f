package views_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tranyenminhbd/docuflow/internal/permission"
	"github.com/tranyenminhbd/docuflow/internal/views"
)

func TestViews(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Views Suite")
}

func roleWithRead(categories ...permission.ResourceCategory) *permission.Role {
	role := &permission.Role{ID: "role-test", Name: "Test"}
	for _, c := range categories {
		switch c {
		case permission.CategoryDocuments:
			role.Permissions.Documents.PermissionSet = permission.ReadOnly()
		case permission.CategoryCategories:
			role.Permissions.Categories = permission.ReadOnly()
		case permission.CategoryUsers:
			role.Permissions.Users = permission.ReadOnly()
		case permission.CategoryDepartments:
			role.Permissions.Departments = permission.ReadOnly()
		case permission.CategoryRoles:
			role.Permissions.Roles = permission.ReadOnly()
		}
	}
	return role
}

var _ = Describe("Resolve", func() {
	Context("without a session", func() {
		It("routes everything to the public reader", func() {
			for _, view := range []string{
				views.ViewDocuments, views.ViewUsers, views.ViewDepartments,
				views.ViewRoles, views.ViewCategories, views.ViewDocumentsManagement,
				views.ViewProfile, views.ViewConfig, "",
			} {
				target := views.Resolve(views.Request{View: view}, false, nil)
				Expect(target).To(Equal(views.TargetPublicReader), "view %q", view)
			}
		})
	})

	Context("management views", func() {
		It("opens user management with users.read", func() {
			role := roleWithRead(permission.CategoryUsers)
			target := views.Resolve(views.Request{View: views.ViewUsers}, true, role)
			Expect(target).To(Equal(views.TargetUserManagement))
		})

		It("falls back to the public reader without users.read", func() {
			role := roleWithRead(permission.CategoryDocuments)
			target := views.Resolve(views.Request{View: views.ViewUsers}, true, role)
			Expect(target).To(Equal(views.TargetPublicReader))
		})

		It("routes each management view by its own read permission", func() {
			cases := map[string]struct {
				category permission.ResourceCategory
				target   views.Target
			}{
				views.ViewDepartments:         {permission.CategoryDepartments, views.TargetDepartmentManagement},
				views.ViewRoles:               {permission.CategoryRoles, views.TargetRoleManagement},
				views.ViewCategories:          {permission.CategoryCategories, views.TargetCategoryManagement},
				views.ViewDocumentsManagement: {permission.CategoryDocuments, views.TargetDocumentManagement},
			}
			for view, tc := range cases {
				granted := views.Resolve(views.Request{View: view}, true, roleWithRead(tc.category))
				Expect(granted).To(Equal(tc.target), "view %q", view)

				denied := views.Resolve(views.Request{View: view}, true, &permission.Role{ID: "r"})
				Expect(denied).To(Equal(views.TargetPublicReader), "view %q", view)
			}
		})

		It("requires no permission for the profile view", func() {
			target := views.Resolve(views.Request{View: views.ViewProfile}, true, &permission.Role{ID: "r"})
			Expect(target).To(Equal(views.TargetProfile))
		})
	})

	Context("configuration view", func() {
		It("opens only for the super admin role", func() {
			admin := &permission.Role{ID: permission.SuperAdminRoleID, Name: "Super Admin"}
			Expect(views.Resolve(views.Request{View: views.ViewConfig}, true, admin)).
				To(Equal(views.TargetConfiguration))
		})

		It("denies every other role regardless of its flags", func() {
			full := &permission.Role{
				ID: "role-power",
				Permissions: permission.RolePermissions{
					Documents:   permission.DocumentPermissions{PermissionSet: permission.FullAccess(), EditOthers: true},
					Categories:  permission.FullAccess(),
					Users:       permission.FullAccess(),
					Departments: permission.FullAccess(),
					Roles:       permission.FullAccess(),
				},
			}
			Expect(views.Resolve(views.Request{View: views.ViewConfig}, true, full)).
				To(Equal(views.TargetPublicReader))
		})
	})

	Context("documents view", func() {
		It("renders the dashboard when nothing narrows the list", func() {
			target := views.Resolve(views.Request{View: views.ViewDocuments}, true, nil)
			Expect(target).To(Equal(views.TargetDashboard))
		})

		It("stays on the public reader while a filter is active", func() {
			target := views.Resolve(views.Request{View: views.ViewDocuments, HasFilter: true}, true, nil)
			Expect(target).To(Equal(views.TargetPublicReader))
		})

		It("stays on the public reader while a search is active", func() {
			target := views.Resolve(views.Request{View: views.ViewDocuments, SearchQuery: "policy"}, true, nil)
			Expect(target).To(Equal(views.TargetPublicReader))
		})

		It("stays on the public reader while a document is open", func() {
			target := views.Resolve(views.Request{View: views.ViewDocuments, DocumentID: "doc-1"}, true, nil)
			Expect(target).To(Equal(views.TargetPublicReader))
		})
	})

	It("treats an unknown view as the public reader", func() {
		target := views.Resolve(views.Request{View: "nonsense"}, true, roleWithRead(permission.CategoryUsers))
		Expect(target).To(Equal(views.TargetPublicReader))
	})
})
