package department

import "github.com/tranyenminhbd/docuflow/internal/core/common/validation"

// DepartmentDTO covers both create and update; a department is just a name.
type DepartmentDTO struct {
	Name string `json:"name"`
}

func (dto DepartmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
