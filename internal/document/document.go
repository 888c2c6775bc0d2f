package document

import (
	"time"

	"github.com/tranyenminhbd/docuflow/internal/auth"
)

const (
	DocumentStatusActive    = "active"
	DocumentStatusSuspended = "suspended"
)

// Attachment kinds accepted on a document. Link and video attachments point
// at external URLs; the file kinds reference uploaded objects.
const (
	AttachmentTypePDF   = "pdf"
	AttachmentTypeDocx  = "docx"
	AttachmentTypeXlsx  = "xlsx"
	AttachmentTypePptx  = "pptx"
	AttachmentTypeVideo = "video"
	AttachmentTypeLink  = "link"
)

func AttachmentTypes() []string {
	return []string{
		AttachmentTypePDF,
		AttachmentTypeDocx,
		AttachmentTypeXlsx,
		AttachmentTypePptx,
		AttachmentTypeVideo,
		AttachmentTypeLink,
	}
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Document is the published unit of content. Content is sanitized HTML.
// CategoryID and IssuingDepartmentID are soft references: the target may be
// deleted out from under them and readers render the gap as "N/A".
type Document struct {
	ID                  string       `json:"id" gorm:"primaryKey"`
	Title               string       `json:"title" gorm:"not null"`
	Content             string       `json:"content"`
	CategoryID          string       `json:"category_id" gorm:"column:category_id"`
	IssuingDepartmentID string       `json:"issuing_department_id" gorm:"column:issuing_department_id"`
	Status              string       `json:"status" gorm:"default:active"`
	Attachments         []Attachment `json:"attachments" gorm:"serializer:json"`
	CreatedAt           time.Time    `json:"created_at" gorm:"column:created_at"`
	LastUpdated         time.Time    `json:"last_updated" gorm:"column:last_updated"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

func (d *Document) IsSuspended() bool {
	return d.Status == DocumentStatusSuspended
}

// View is a document decorated with the caller's affordances. The console
// shows every visible document and disables the controls the caller cannot
// use, so the flags travel with the payload.
type View struct {
	Document
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

// ListFilter narrows a listing. Zero values mean "no constraint".
type ListFilter struct {
	CategoryID   string
	DepartmentID string
	Search       string
}

func (f ListFilter) IsZero() bool {
	return f.CategoryID == "" && f.DepartmentID == "" && f.Search == ""
}

type ServiceAPI interface {
	List(session *auth.Session, filter ListFilter) ([]View, error)
	Get(session *auth.Session, id string) (*View, error)
	Create(session *auth.Session, dto CreateDocumentDTO) (*Document, error)
	Update(session *auth.Session, id string, dto UpdateDocumentDTO) (*Document, error)
	ToggleStatus(session *auth.Session, id string) (*Document, error)
	Delete(session *auth.Session, id string) error
}

type RepositoryAPI interface {
	Create(doc *Document) error
	GetByID(id string) (*Document, error)
	GetAll() ([]*Document, error)
	Update(doc *Document) error
	Delete(id string) error
}
