package department

import "time"

// Department groups users and issues documents. Deleting one leaves
// documents and users pointing at a dangling id; readers render that as
// "N/A" rather than cascading.
type Department struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Department) TableName() string {
	return "departments"
}

type ServiceAPI interface {
	List() ([]Department, error)
	Get(id string) (*Department, error)
	Create(actorName string, dto DepartmentDTO) (*Department, error)
	Update(actorName string, id string, dto DepartmentDTO) (*Department, error)
	Delete(actorName string, id string) error
}

type RepositoryAPI interface {
	Create(d *Department) error
	GetByID(id string) (*Department, error)
	GetAll() ([]*Department, error)
	Update(d *Department) error
	Delete(id string) error
}
