package category

import "github.com/tranyenminhbd/docuflow/internal/core/common/validation"

// CategoryDTO covers both create and update.
type CategoryDTO struct {
	Name string `json:"name"`
}

func (dto CategoryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
