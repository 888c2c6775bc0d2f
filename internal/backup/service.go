package backup

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/activity"
	activitypg "github.com/tranyenminhbd/docuflow/internal/activity/postgres"
	"github.com/tranyenminhbd/docuflow/internal/category"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
	"github.com/tranyenminhbd/docuflow/internal/department"
	"github.com/tranyenminhbd/docuflow/internal/document"
	"github.com/tranyenminhbd/docuflow/internal/role"
	"github.com/tranyenminhbd/docuflow/internal/seed"
	"github.com/tranyenminhbd/docuflow/internal/settings"
	"github.com/tranyenminhbd/docuflow/internal/user"
)

// Service exports and restores the whole dataset. It works on the database
// handle directly rather than the per-feature repositories so a restore is a
// single transaction: either the new dataset lands completely or nothing
// changes.
type Service struct {
	db         *gorm.DB
	eventBus   *events.EventBus
	bcryptCost int
}

func NewService(db *gorm.DB, eventBus *events.EventBus, bcryptCost int) *Service {
	return &Service{
		db:         db,
		eventBus:   eventBus,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) Export() (*Data, error) {
	var (
		documents   []document.Document
		categories  []category.Category
		departments []department.Department
		roles       []role.Role
		users       []user.User
		cfg         settings.AppConfig
	)

	if err := s.db.Find(&documents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&departments).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&roles).Error; err != nil {
		return nil, err
	}
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	entries, err := activitypg.NewActivityRepository(s.db).Recent()
	if err != nil {
		return nil, err
	}
	if err := s.db.First(&cfg).Error; err != nil {
		return nil, err
	}

	userRecords := make([]UserRecord, 0, len(users))
	for _, u := range users {
		userRecords = append(userRecords, toUserRecord(u))
	}

	return &Data{
		Version:     CurrentVersion,
		ExportedAt:  time.Now(),
		Documents:   &documents,
		Categories:  categories,
		Departments: departments,
		Roles:       roles,
		Users:       userRecords,
		Config: &ConfigRecord{
			CompanyName:   cfg.CompanyName,
			ThemeColor:    cfg.ThemeColor,
			LogoURL:       cfg.LogoURL,
			DeveloperName: cfg.DeveloperName,
			DeveloperURL:  cfg.DeveloperURL,
		},
		ActivityLog: entries,
	}, nil
}

// Restore replaces the dataset with the uploaded backup. The payload must
// carry at least the documents and config sections; a missing activity log
// is tolerated for older exports and simply leaves the log empty.
func (s *Service) Restore(actorName string, raw []byte) error {
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return internal.ErrMalformedBackup
	}
	if data.Documents == nil || data.Config == nil {
		return internal.ErrMalformedBackup
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := wipe(tx); err != nil {
			return err
		}

		for i := range *data.Documents {
			if err := tx.Create(&(*data.Documents)[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Categories {
			if err := tx.Create(&data.Categories[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Departments {
			if err := tx.Create(&data.Departments[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Roles {
			if err := tx.Create(&data.Roles[i]).Error; err != nil {
				return err
			}
		}
		for _, record := range data.Users {
			u := record.toUser()
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}

		log := data.ActivityLog
		if len(log) > activity.MaxEntries {
			log = log[:activity.MaxEntries]
		}
		if err := activitypg.NewActivityRepository(tx).ReplaceAll(log); err != nil {
			return err
		}

		cfg := settings.DefaultConfig()
		cfg.CompanyName = data.Config.CompanyName
		cfg.ThemeColor = data.Config.ThemeColor
		cfg.LogoURL = data.Config.LogoURL
		cfg.DeveloperName = data.Config.DeveloperName
		cfg.DeveloperURL = data.Config.DeveloperURL
		return tx.Create(&cfg).Error
	})
	if err != nil {
		return err
	}

	s.recordActivity(actorName, "Restored data from backup")
	return nil
}

// Reset wipes everything and reinstalls the seed dataset.
func (s *Service) Reset(actorName string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := wipe(tx); err != nil {
			return err
		}
		return seed.Apply(tx, s.bcryptCost)
	})
	if err != nil {
		return err
	}

	s.recordActivity(actorName, "Reset all data to defaults")
	return nil
}

func wipe(tx *gorm.DB) error {
	tables := []string{
		"documents", "categories", "departments",
		"roles", "users", "activity_log", "app_config",
	}
	for _, table := range tables {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) recordActivity(actorName, action string) {
	if s.eventBus == nil || actorName == "" {
		return
	}
	s.eventBus.PublishSync(context.Background(), events.NewActivityRecordedEvent(actorName, action))
}
