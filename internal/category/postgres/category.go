package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/category"
)

// CategoryRepository implements category.RepositoryAPI using GORM
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *category.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) GetByID(id string) (*category.Category, error) {
	var c category.Category
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) GetAll() ([]*category.Category, error) {
	var categories []*category.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(c *category.Category) error {
	return r.db.Save(c).Error
}

func (r *CategoryRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&category.Category{}).Error
}
