package user

import (
	"time"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// User is the management-facing account record. The password hash never
// leaves the server; DTOs carry plaintext passwords inbound only.
type User struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"not null"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash     string    `json:"-" gorm:"column:password_hash"`
	DepartmentID     string    `json:"department_id" gorm:"column:department_id"`
	RoleID           string    `json:"role_id" gorm:"column:role_id"`
	Status           string    `json:"status" gorm:"default:active"`
	SidebarCollapsed bool      `json:"sidebar_collapsed" gorm:"column:sidebar_collapsed"`
	LastLogin        time.Time `json:"last_login" gorm:"column:last_login"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) IsSuspended() bool {
	return u.Status == StatusSuspended
}

// PasswordHasher lets the service hash passwords without depending on the
// auth service wiring.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type ServiceAPI interface {
	List() ([]User, error)
	Get(id string) (*User, error)
	Create(actorName string, dto CreateUserDTO) (*User, error)
	Update(actorName string, id string, dto UpdateUserDTO) (*User, error)
	ResetPassword(actorName string, id string, dto ResetPasswordDTO) error
	ToggleStatus(actorName string, id string) (*User, error)
	Delete(actorName string, id string) error
	UpdateProfile(id string, dto UpdateProfileDTO) (*User, error)
	SetSidebarCollapsed(id string, collapsed bool) error
}

type RepositoryAPI interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll() ([]*User, error)
	Update(u *User) error
	Delete(id string) error
}
