package category

import "time"

// Category labels documents for filtering. Like departments, deletion does
// not cascade into the documents that reference it.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

type ServiceAPI interface {
	List() ([]Category, error)
	Get(id string) (*Category, error)
	Create(actorName string, dto CategoryDTO) (*Category, error)
	Update(actorName string, id string, dto CategoryDTO) (*Category, error)
	Delete(actorName string, id string) error
}

type RepositoryAPI interface {
	Create(c *Category) error
	GetByID(id string) (*Category, error)
	GetAll() ([]*Category, error)
	Update(c *Category) error
	Delete(id string) error
}
