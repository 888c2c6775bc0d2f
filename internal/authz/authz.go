// Package authz combines the permission matrix with session identity and
// document ownership to decide whether a requested action is allowed. The
// decision only drives UI affordances and API responses; there is no further
// enforcement layer behind it.
package authz

import (
	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

// AuthorizeDocumentAction decides whether a user holding the given role may
// perform op on a document issued by issuingDepartmentID.
//
// The base check is the role's documents permission for op. Read and create
// stop there: reading is global and creation is not ownership-scoped. Update
// and delete (status toggles count as update) additionally require the user
// to belong to the issuing department, unless the role carries the
// EditOthers override.
//
// A nil error means allowed. Denials are distinguishable so callers can
// disable controls with the right explanation: ErrPermissionDenied for a
// missing base permission, ErrNotDocumentOwner for an ownership failure.
func AuthorizeDocumentAction(userDepartmentID string, role *permission.Role, issuingDepartmentID string, op permission.Operation) error {
	if !permission.CanPerform(role, permission.CategoryDocuments, op) {
		return internal.ErrPermissionDenied
	}

	if op == permission.OpRead || op == permission.OpCreate {
		return nil
	}

	if userDepartmentID == issuingDepartmentID || role.Permissions.Documents.EditOthers {
		return nil
	}
	return internal.ErrNotDocumentOwner
}

// CanViewDocument reports whether a caller may see a document in listings
// and the public reader. Active documents are visible to everyone; suspended
// documents only to staff, i.e. roles holding documents.update.
func CanViewDocument(role *permission.Role, suspended bool) bool {
	if !suspended {
		return true
	}
	return permission.CanPerform(role, permission.CategoryDocuments, permission.OpUpdate)
}
