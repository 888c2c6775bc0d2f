package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/permission"
	"github.com/tranyenminhbd/docuflow/internal/role"
)

// RoleRepository implements role.RepositoryAPI using GORM
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ro *role.Role) error {
	return r.db.Create(ro).Error
}

func (r *RoleRepository) GetByID(id string) (*role.Role, error) {
	var ro role.Role
	err := r.db.Where("id = ?", id).First(&ro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return &ro, nil
}

func (r *RoleRepository) GetAll() ([]*role.Role, error) {
	var roles []*role.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) Update(ro *role.Role) error {
	return r.db.Save(ro).Error
}

func (r *RoleRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&role.Role{}).Error
}

// Resolver adapts the role store to auth's RoleResolver: a dangling role id
// is not an error, just a nil role.
type Resolver struct {
	repo role.RepositoryAPI
}

func NewResolver(repo role.RepositoryAPI) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) GetByID(id string) (*permission.Role, error) {
	ro, err := r.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, internal.ErrRoleNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ro.ToPermissionRole(), nil
}
