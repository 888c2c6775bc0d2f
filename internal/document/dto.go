package document

import (
	"github.com/tranyenminhbd/docuflow/internal/core/common/validation"
)

// CreateDocumentDTO is the payload for publishing a new document.
type CreateDocumentDTO struct {
	Title               string       `json:"title"`
	Content             string       `json:"content"`
	CategoryID          string       `json:"category_id"`
	IssuingDepartmentID string       `json:"issuing_department_id"`
	Attachments         []Attachment `json:"attachments"`
}

func (dto CreateDocumentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("category_id", dto.CategoryID).Required()
	v.Field("issuing_department_id", dto.IssuingDepartmentID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return validateAttachments(dto.Attachments)
}

// UpdateDocumentDTO carries the editable fields. Attachments are replaced
// wholesale; the status is toggled through its own endpoint.
type UpdateDocumentDTO struct {
	Title               string       `json:"title"`
	Content             string       `json:"content"`
	CategoryID          string       `json:"category_id"`
	IssuingDepartmentID string       `json:"issuing_department_id"`
	Attachments         []Attachment `json:"attachments"`
}

func (dto UpdateDocumentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("category_id", dto.CategoryID).Required()
	v.Field("issuing_department_id", dto.IssuingDepartmentID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return validateAttachments(dto.Attachments)
}

func validateAttachments(attachments []Attachment) error {
	v := validation.NewValidator()
	for _, a := range attachments {
		v.Field("attachments.name", a.Name).Required()
		v.Field("attachments.type", a.Type).Required().OneOf(AttachmentTypes()...)
		v.Field("attachments.url", a.URL).Required()
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
