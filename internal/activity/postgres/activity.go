package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/tranyenminhbd/docuflow/internal/activity"
)

// ActivityRepository persists the bounded activity log with GORM.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db}
}

// Seq is a per-table insertion counter. Ordering by it keeps the log in
// strict insertion order even when two entries share a timestamp.
type entryRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Seq       int64     `gorm:"column:seq;index"`
	UserName  string    `gorm:"column:user_name"`
	Action    string    `gorm:"column:action"`
	Timestamp time.Time `gorm:"column:timestamp"`
}

func (entryRow) TableName() string { return "activity_log" }

// Migrate creates or updates the activity log table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entryRow{})
}

// Insert writes the entry and evicts everything past the cap in the same
// transaction so a burst of writes cannot leave the log oversized.
func (r *ActivityRepository) Insert(entry activity.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&entryRow{}).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		row := entryRow{
			ID:        entry.ID,
			Seq:       maxSeq + 1,
			UserName:  entry.UserName,
			Action:    entry.Action,
			Timestamp: entry.Timestamp,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		var keep []string
		if err := tx.Model(&entryRow{}).
			Order("seq DESC").
			Limit(activity.MaxEntries).
			Pluck("id", &keep).Error; err != nil {
			return err
		}

		return tx.Where("id NOT IN ?", keep).Delete(&entryRow{}).Error
	})
}

func (r *ActivityRepository) Recent() ([]activity.Entry, error) {
	var rows []entryRow
	err := r.db.Order("seq DESC").
		Limit(activity.MaxEntries).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]activity.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, activity.Entry{
			ID:        row.ID,
			UserName:  row.UserName,
			Action:    row.Action,
			Timestamp: row.Timestamp,
		})
	}
	return entries, nil
}

// ReplaceAll installs a restored log. The input comes most-recent-first, so
// sequence numbers are assigned counting down.
func (r *ActivityRepository) ReplaceAll(entries []activity.Entry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entryRow{}).Error; err != nil {
			return err
		}
		for i, entry := range entries {
			row := entryRow{
				ID:        entry.ID,
				Seq:       int64(len(entries) - i),
				UserName:  entry.UserName,
				Action:    entry.Action,
				Timestamp: entry.Timestamp,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ActivityRepository) Clear() error {
	return r.db.Where("1 = 1").Delete(&entryRow{}).Error
}
