package settings

import (
	"regexp"

	errors "github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/core/common/validation"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type UpdateConfigDTO struct {
	CompanyName   string `json:"company_name"`
	ThemeColor    string `json:"theme_color"`
	DeveloperName string `json:"developer_name"`
	DeveloperURL  string `json:"developer_url"`
}

func (dto UpdateConfigDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("company_name", dto.CompanyName).Required().MaxLength(100)
	v.Field("theme_color", dto.ThemeColor).Required().Custom(func(value interface{}) *errors.AppError {
		if s, ok := value.(string); ok && s != "" {
			if !hexColorPattern.MatchString(s) {
				return errors.NewValidationFieldError("theme_color", "theme_color must be a hex color", errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	v.Field("developer_name", dto.DeveloperName).MaxLength(100)
	v.Field("developer_url", dto.DeveloperURL).MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
