package role

import (
	"github.com/tranyenminhbd/docuflow/internal/core/common/validation"
	"github.com/tranyenminhbd/docuflow/internal/permission"
)

// RoleDTO covers create and update. The permission matrix arrives as the
// full nested structure; absent flags decode to false.
type RoleDTO struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Permissions permission.RolePermissions `json:"permissions"`
}

func (dto RoleDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("description", dto.Description).MaxLength(500)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
