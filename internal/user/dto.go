package user

import (
	"github.com/tranyenminhbd/docuflow/internal/core/common/validation"
)

type CreateUserDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	DepartmentID string `json:"department_id"`
	RoleID       string `json:"role_id"`
}

func (dto CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required().MinLength(8)
	v.Field("department_id", dto.DepartmentID).Required()
	v.Field("role_id", dto.RoleID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO changes the account fields an administrator manages.
// Passwords go through ResetPasswordDTO instead.
type UpdateUserDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID string `json:"department_id"`
	RoleID       string `json:"role_id"`
}

func (dto UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().Email()
	v.Field("department_id", dto.DepartmentID).Required()
	v.Field("role_id", dto.RoleID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ResetPasswordDTO struct {
	Password string `json:"password"`
}

func (dto ResetPasswordDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("password", dto.Password).Required().MinLength(8)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateProfileDTO is the self-service subset: a user renames themselves or
// changes their own password, nothing else.
type UpdateProfileDTO struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

func (dto UpdateProfileDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	if dto.Password != "" {
		v.Field("password", dto.Password).MinLength(8)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type SidebarPreferenceDTO struct {
	Collapsed bool `json:"collapsed"`
}
