package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal/auth"
)

// AuthRepository reads the users table for credential checks and session
// restoration. The user feature owns writes to that table; this repository
// only touches last_login.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

type userRow struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	DepartmentID string    `gorm:"column:department_id"`
	RoleID       string    `gorm:"column:role_id"`
	Status       string    `gorm:"column:status"`
	LastLogin    time.Time `gorm:"column:last_login"`
}

func (userRow) TableName() string { return "users" }

func (row *userRow) toDomain() *auth.User {
	return &auth.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		DepartmentID: row.DepartmentID,
		RoleID:       row.RoleID,
		Status:       row.Status,
		LastLogin:    row.LastLogin,
	}
}

func (r *AuthRepository) GetByEmail(email string) (*auth.User, error) {
	var row userRow
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *AuthRepository) GetByID(id string) (*auth.User, error) {
	var row userRow
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *AuthRepository) UpdateLastLogin(id string, at time.Time) error {
	return r.db.Model(&userRow{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
