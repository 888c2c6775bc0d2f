// Package seed installs the dataset a fresh deployment starts from: the
// super admin role and account, a starter role, a couple of departments and
// categories, the default configuration, and a welcome document.
package seed

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal/category"
	"github.com/tranyenminhbd/docuflow/internal/department"
	"github.com/tranyenminhbd/docuflow/internal/document"
	"github.com/tranyenminhbd/docuflow/internal/permission"
	"github.com/tranyenminhbd/docuflow/internal/role"
	"github.com/tranyenminhbd/docuflow/internal/settings"
	"github.com/tranyenminhbd/docuflow/internal/user"
)

// Default admin credentials. Deployments are expected to change the password
// right after first login.
const (
	AdminEmail    = "admin@docuflow.local"
	AdminPassword = "changeme-admin"
)

// Apply writes the seed dataset using the given handle, which may be a
// transaction. Existing rows in the touched tables are left alone; call it
// on an empty database.
func Apply(db *gorm.DB, bcryptCost int) error {
	now := time.Now()

	adminHash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcryptCost)
	if err != nil {
		return err
	}

	roles := []role.Role{
		{
			ID:          permission.SuperAdminRoleID,
			Name:        "Super Admin",
			Description: "Unrestricted access to every part of the console",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "role-staff",
			Name:        "Staff",
			Description: "Manages documents issued by their own department",
			Permissions: permission.RolePermissions{
				Documents: permission.DocumentPermissions{
					PermissionSet: permission.FullAccess(),
				},
				Categories: permission.ReadOnly(),
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          "role-viewer",
			Name:        "Viewer",
			Description: "Read-only access to published documents",
			Permissions: permission.RolePermissions{
				Documents: permission.DocumentPermissions{
					PermissionSet: permission.ReadOnly(),
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	departments := []department.Department{
		{ID: "dept-operations", Name: "Operations", CreatedAt: now, UpdatedAt: now},
		{ID: "dept-hr", Name: "Human Resources", CreatedAt: now, UpdatedAt: now},
	}

	categories := []category.Category{
		{ID: "cat-policies", Name: "Policies", CreatedAt: now, UpdatedAt: now},
		{ID: "cat-guides", Name: "Guides", CreatedAt: now, UpdatedAt: now},
	}

	admin := user.User{
		ID:           uuid.New().String(),
		Name:         "Administrator",
		Email:        AdminEmail,
		PasswordHash: string(adminHash),
		DepartmentID: "dept-operations",
		RoleID:       permission.SuperAdminRoleID,
		Status:       user.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	welcome := document.Document{
		ID:                  uuid.New().String(),
		Title:               "Welcome to DocuFlow",
		Content:             "<p>This is your document console. Sign in to publish, organize, and manage company documents.</p>",
		CategoryID:          "cat-guides",
		IssuingDepartmentID: "dept-operations",
		Status:              document.DocumentStatusActive,
		CreatedAt:           now,
		LastUpdated:         now,
	}

	cfg := settings.DefaultConfig()

	for i := range roles {
		if err := db.Create(&roles[i]).Error; err != nil {
			return err
		}
	}
	for i := range departments {
		if err := db.Create(&departments[i]).Error; err != nil {
			return err
		}
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			return err
		}
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	if err := db.Create(&welcome).Error; err != nil {
		return err
	}
	return db.Create(&cfg).Error
}
