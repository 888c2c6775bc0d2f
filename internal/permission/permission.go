package permission

// ResourceCategory is one of the five administrable entity types. Every
// role carries a PermissionSet for each of them, no more and no fewer.
type ResourceCategory string

const (
	CategoryDocuments   ResourceCategory = "documents"
	CategoryCategories  ResourceCategory = "categories"
	CategoryUsers       ResourceCategory = "users"
	CategoryDepartments ResourceCategory = "departments"
	CategoryRoles       ResourceCategory = "roles"
)

// Categories lists the fixed resource categories in display order.
func Categories() []ResourceCategory {
	return []ResourceCategory{
		CategoryDocuments,
		CategoryCategories,
		CategoryUsers,
		CategoryDepartments,
		CategoryRoles,
	}
}

type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// SuperAdminRoleID is the reserved sentinel role id. System configuration
// and backup/restore are gated by comparing against it directly, never by a
// permission flag.
const SuperAdminRoleID = "super-admin"

type PermissionSet struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

func (p PermissionSet) Allows(op Operation) bool {
	switch op {
	case OpCreate:
		return p.Create
	case OpRead:
		return p.Read
	case OpUpdate:
		return p.Update
	case OpDelete:
		return p.Delete
	}
	return false
}

// FullAccess returns a PermissionSet with every operation enabled.
func FullAccess() PermissionSet {
	return PermissionSet{Create: true, Read: true, Update: true, Delete: true}
}

// ReadOnly returns a PermissionSet allowing only read.
func ReadOnly() PermissionSet {
	return PermissionSet{Read: true}
}

// DocumentPermissions extends the base set with EditOthers, the single
// cross-department override: it lets a role bypass the document ownership
// check. It exists only on the documents category.
type DocumentPermissions struct {
	PermissionSet
	EditOthers bool `json:"editOthers"`
}

// RolePermissions is the full permission matrix of a role: exactly the five
// resource categories, documents carrying the extra EditOthers flag.
type RolePermissions struct {
	Documents   DocumentPermissions `json:"documents"`
	Categories  PermissionSet       `json:"categories"`
	Users       PermissionSet       `json:"users"`
	Departments PermissionSet       `json:"departments"`
	Roles       PermissionSet       `json:"roles"`
}

// For returns the PermissionSet for a category. The documents entry is
// returned without the EditOthers flag; callers needing the override read
// Documents directly.
func (rp RolePermissions) For(category ResourceCategory) (PermissionSet, bool) {
	switch category {
	case CategoryDocuments:
		return rp.Documents.PermissionSet, true
	case CategoryCategories:
		return rp.Categories, true
	case CategoryUsers:
		return rp.Users, true
	case CategoryDepartments:
		return rp.Departments, true
	case CategoryRoles:
		return rp.Roles, true
	}
	return PermissionSet{}, false
}

// Role is a named permission matrix. Referenced from users by id; the
// reference is soft, so a role may be deleted while users still point at it.
type Role struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Permissions RolePermissions `json:"permissions"`
}

// CanPerform reports whether the role allows the operation on the category.
// A nil role (no session) or an unknown category/operation is always false.
// Pure: no side effects, no I/O.
func CanPerform(role *Role, category ResourceCategory, op Operation) bool {
	if role == nil {
		return false
	}
	set, ok := role.Permissions.For(category)
	if !ok {
		return false
	}
	return set.Allows(op)
}

// IsSuperAdmin reports whether the role is the reserved super-admin role.
// This is an identity check on the role id, not a permission flag.
func IsSuperAdmin(role *Role) bool {
	return role != nil && role.ID == SuperAdminRoleID
}
