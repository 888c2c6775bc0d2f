package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal/settings"
)

// SettingsRepository persists the configuration singleton with GORM.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settings.RepositoryAPI {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get() (*settings.AppConfig, error) {
	var cfg settings.AppConfig
	err := r.db.First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg = settings.DefaultConfig()
			if err := r.db.Create(&cfg).Error; err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *SettingsRepository) Save(cfg *settings.AppConfig) error {
	return r.db.Save(cfg).Error
}
