package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/document"
)

// DocumentRepository implements the document.RepositoryAPI interface using GORM
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.RepositoryAPI {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *document.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepository) GetByID(id string) (*document.Document, error) {
	var doc document.Document
	err := r.db.Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// GetAll returns every document, newest first. Visibility filtering happens
// in the service where the caller's role is known.
func (r *DocumentRepository) GetAll() ([]*document.Document, error) {
	var docs []*document.Document
	err := r.db.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Update(doc *document.Document) error {
	return r.db.Save(doc).Error
}

func (r *DocumentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&document.Document{}).Error
}
