package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/department"
)

// DepartmentRepository implements department.RepositoryAPI using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(d *department.Department) error {
	return r.db.Create(d).Error
}

func (r *DepartmentRepository) GetByID(id string) (*department.Department, error) {
	var d department.Department
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) GetAll() ([]*department.Department, error) {
	var departments []*department.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) Update(d *department.Department) error {
	return r.db.Save(d).Error
}

func (r *DepartmentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&department.Department{}).Error
}
