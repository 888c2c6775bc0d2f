package permission_test

import (
	"testing"

	"github.com/tranyenminhbd/docuflow/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPermission(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Suite")
}

var _ = Describe("CanPerform", func() {
	var role *permission.Role

	BeforeEach(func() {
		role = &permission.Role{
			ID:   "role-staff",
			Name: "Staff",
			Permissions: permission.RolePermissions{
				Documents: permission.DocumentPermissions{
					PermissionSet: permission.PermissionSet{Create: true, Read: true, Update: true},
				},
				Categories:  permission.ReadOnly(),
				Users:       permission.PermissionSet{},
				Departments: permission.ReadOnly(),
				Roles:       permission.PermissionSet{},
			},
		}
	})

	It("returns exactly the stored flag for every category and operation", func() {
		type check struct {
			category permission.ResourceCategory
			op       permission.Operation
			want     bool
		}
		checks := []check{
			{permission.CategoryDocuments, permission.OpCreate, true},
			{permission.CategoryDocuments, permission.OpRead, true},
			{permission.CategoryDocuments, permission.OpUpdate, true},
			{permission.CategoryDocuments, permission.OpDelete, false},
			{permission.CategoryCategories, permission.OpRead, true},
			{permission.CategoryCategories, permission.OpCreate, false},
			{permission.CategoryUsers, permission.OpRead, false},
			{permission.CategoryDepartments, permission.OpRead, true},
			{permission.CategoryDepartments, permission.OpDelete, false},
			{permission.CategoryRoles, permission.OpUpdate, false},
		}
		for _, c := range checks {
			Expect(permission.CanPerform(role, c.category, c.op)).To(Equal(c.want),
				"category %s op %s", c.category, c.op)
		}
	})

	It("is always false for a nil role", func() {
		for _, category := range permission.Categories() {
			for _, op := range []permission.Operation{permission.OpCreate, permission.OpRead, permission.OpUpdate, permission.OpDelete} {
				Expect(permission.CanPerform(nil, category, op)).To(BeFalse())
			}
		}
	})

	It("is false for an unknown category or operation", func() {
		Expect(permission.CanPerform(role, permission.ResourceCategory("reports"), permission.OpRead)).To(BeFalse())
		Expect(permission.CanPerform(role, permission.CategoryDocuments, permission.Operation("approve"))).To(BeFalse())
	})
})

var _ = Describe("IsSuperAdmin", func() {
	It("matches only the reserved role id", func() {
		Expect(permission.IsSuperAdmin(&permission.Role{ID: permission.SuperAdminRoleID})).To(BeTrue())
		Expect(permission.IsSuperAdmin(&permission.Role{ID: "role-admin"})).To(BeFalse())
		Expect(permission.IsSuperAdmin(nil)).To(BeFalse())
	})

	It("ignores permission flags entirely", func() {
		allPowerful := &permission.Role{
			ID: "role-admin",
			Permissions: permission.RolePermissions{
				Documents:   permission.DocumentPermissions{PermissionSet: permission.FullAccess(), EditOthers: true},
				Categories:  permission.FullAccess(),
				Users:       permission.FullAccess(),
				Departments: permission.FullAccess(),
				Roles:       permission.FullAccess(),
			},
		}
		Expect(permission.IsSuperAdmin(allPowerful)).To(BeFalse())
	})
})
