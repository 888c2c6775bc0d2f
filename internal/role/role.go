package role

import (
	"time"

	"github.com/tranyenminhbd/docuflow/internal/permission"
)

// Role persists a named permission matrix. The matrix is stored as a JSON
// column; its shape is the permission package's RolePermissions.
type Role struct {
	ID          string                     `json:"id" gorm:"primaryKey"`
	Name        string                     `json:"name" gorm:"uniqueIndex;not null"`
	Description string                     `json:"description"`
	Permissions permission.RolePermissions `json:"permissions" gorm:"serializer:json"`
	CreatedAt   time.Time                  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time                  `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

func (r *Role) ToPermissionRole() *permission.Role {
	if r == nil {
		return nil
	}
	return &permission.Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
	}
}

type ServiceAPI interface {
	List() ([]Role, error)
	Get(id string) (*Role, error)
	Create(actorName string, dto RoleDTO) (*Role, error)
	Update(actorName string, id string, dto RoleDTO) (*Role, error)
	Delete(actorName string, id string) error
}

type RepositoryAPI interface {
	Create(r *Role) error
	GetByID(id string) (*Role, error)
	GetAll() ([]*Role, error)
	Update(r *Role) error
	Delete(id string) error
}
