// Package views maps navigation state to the screen the console should
// render. The resolver is a pure function over the requested view, the
// session, and the caller's permissions, so a permission change re-routes on
// the next resolution without any client-side bookkeeping.
package views

import (
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

// Target is the screen the client should render.
type Target string

const (
	TargetPublicReader         Target = "public-reader"
	TargetDashboard            Target = "dashboard"
	TargetDocumentManagement   Target = "document-management"
	TargetUserManagement       Target = "user-management"
	TargetDepartmentManagement Target = "department-management"
	TargetRoleManagement       Target = "role-management"
	TargetCategoryManagement   Target = "category-management"
	TargetProfile              Target = "profile"
	TargetConfiguration        Target = "configuration"
)

// View names as requested by the client, mirroring the navigation sidebar.
const (
	ViewDocuments           = "documents"
	ViewUsers               = "users"
	ViewDepartments         = "departments"
	ViewRoles               = "roles"
	ViewCategories          = "categories"
	ViewDocumentsManagement = "documents-management"
	ViewProfile             = "profile"
	ViewConfig              = "config"
)

// Request is the navigation state to resolve.
type Request struct {
	View        string `json:"view"`
	HasFilter   bool   `json:"has_filter"`
	SearchQuery string `json:"search_query"`
	DocumentID  string `json:"document_id"`
}

// browsing reports whether the documents view is narrowed by a filter,
// search, or an open document.
func (r Request) browsing() bool {
	return r.HasFilter || r.SearchQuery != "" || r.DocumentID != ""
}

// Resolve picks the screen for a navigation request.
//
// Without a session everything lands on the public reader. With one, each
// management view requires the matching read permission and falls back to the
// public reader when it is missing; the configuration view is reserved for
// the super admin. The bare documents view renders the dashboard unless the
// user is already narrowing it down, in which case it stays on the public
// reader, the same screen an anonymous visitor gets.
func Resolve(req Request, signedIn bool, role *permission.Role) Target {
	if !signedIn {
		return TargetPublicReader
	}

	switch req.View {
	case ViewUsers:
		if permission.CanPerform(role, permission.CategoryUsers, permission.OpRead) {
			return TargetUserManagement
		}
	case ViewDepartments:
		if permission.CanPerform(role, permission.CategoryDepartments, permission.OpRead) {
			return TargetDepartmentManagement
		}
	case ViewRoles:
		if permission.CanPerform(role, permission.CategoryRoles, permission.OpRead) {
			return TargetRoleManagement
		}
	case ViewCategories:
		if permission.CanPerform(role, permission.CategoryCategories, permission.OpRead) {
			return TargetCategoryManagement
		}
	case ViewDocumentsManagement:
		if permission.CanPerform(role, permission.CategoryDocuments, permission.OpRead) {
			return TargetDocumentManagement
		}
	case ViewProfile:
		return TargetProfile
	case ViewConfig:
		if permission.IsSuperAdmin(role) {
			return TargetConfiguration
		}
	case ViewDocuments, "":
		if req.browsing() {
			return TargetPublicReader
		}
		return TargetDashboard
	}

	return TargetPublicReader
}
