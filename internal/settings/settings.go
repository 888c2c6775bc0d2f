package settings

import "time"

// Defaults applied on first boot and on full reset.
const (
	DefaultCompanyName   = "DocuFlow"
	DefaultThemeColor    = "#4f46e5"
	DefaultDeveloperName = "Gemini Coder"
	DefaultDeveloperURL  = "https://gemini.google.com/"
)

// singletonID pins the configuration to one row.
const singletonID = "app-config"

// AppConfig is the tenant-wide appearance configuration. One row exists.
type AppConfig struct {
	ID            string    `json:"-" gorm:"primaryKey"`
	CompanyName   string    `json:"company_name" gorm:"column:company_name"`
	ThemeColor    string    `json:"theme_color" gorm:"column:theme_color"`
	LogoURL       string    `json:"logo_url" gorm:"column:logo_url"`
	DeveloperName string    `json:"developer_name" gorm:"column:developer_name"`
	DeveloperURL  string    `json:"developer_url" gorm:"column:developer_url"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (AppConfig) TableName() string {
	return "app_config"
}

func DefaultConfig() AppConfig {
	return AppConfig{
		ID:            singletonID,
		CompanyName:   DefaultCompanyName,
		ThemeColor:    DefaultThemeColor,
		DeveloperName: DefaultDeveloperName,
		DeveloperURL:  DefaultDeveloperURL,
		UpdatedAt:     time.Now(),
	}
}

type ServiceAPI interface {
	Get() (*AppConfig, error)
	Update(actorName string, dto UpdateConfigDTO) (*AppConfig, error)
	SetLogo(actorName string, logoURL string) (*AppConfig, error)
	Replace(cfg AppConfig) error
	Reset() error
}

type RepositoryAPI interface {
	// Get returns the singleton row, creating it with defaults when absent.
	Get() (*AppConfig, error)
	Save(cfg *AppConfig) error
}
