package postgres_test

import (
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tranyenminhbd/docuflow/internal/activity"
	activityPostgres "github.com/tranyenminhbd/docuflow/internal/activity/postgres"
)

func TestActivityPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Activity Postgres Suite")
}

// SQLiteEntry is a SQLite-compatible model for testing
type SQLiteEntry struct {
	ID        string    `gorm:"primaryKey"`
	Seq       int64     `gorm:"column:seq"`
	UserName  string    `gorm:"column:user_name"`
	Action    string    `gorm:"column:action"`
	Timestamp time.Time `gorm:"column:timestamp"`
}

func (SQLiteEntry) TableName() string {
	return "activity_log"
}

var _ = Describe("Activity Repository", func() {
	var (
		db   *gorm.DB
		repo activity.RepositoryAPI
		base time.Time
	)

	entryAt := func(n int) activity.Entry {
		return activity.Entry{
			ID:        uuid.New().String(),
			UserName:  "Alice Nguyen",
			Action:    fmt.Sprintf("Action %d", n),
			Timestamp: base.Add(time.Duration(n) * time.Second),
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteEntry{})
		Expect(err).NotTo(HaveOccurred())

		repo = activityPostgres.NewActivityRepository(db)
		base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	})

	Describe("Insert and Recent", func() {
		It("should return entries most recent first", func() {
			for n := 0; n < 3; n++ {
				Expect(repo.Insert(entryAt(n))).To(Succeed())
			}

			entries, err := repo.Recent()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].Action).To(Equal("Action 2"))
			Expect(entries[1].Action).To(Equal("Action 1"))
			Expect(entries[2].Action).To(Equal("Action 0"))
		})

		It("should keep insertion order when timestamps collide", func() {
			for n := 0; n < 3; n++ {
				entry := entryAt(n)
				entry.Timestamp = base
				Expect(repo.Insert(entry)).To(Succeed())
			}

			entries, err := repo.Recent()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].Action).To(Equal("Action 2"))
			Expect(entries[1].Action).To(Equal("Action 1"))
			Expect(entries[2].Action).To(Equal("Action 0"))
		})

		It("should evict the oldest entry when the cap is exceeded", func() {
			for n := 0; n < activity.MaxEntries+1; n++ {
				Expect(repo.Insert(entryAt(n))).To(Succeed())
			}

			entries, err := repo.Recent()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(activity.MaxEntries))

			// Entry 0 fell off; the newest survives at the front.
			Expect(entries[0].Action).To(Equal(fmt.Sprintf("Action %d", activity.MaxEntries)))
			Expect(entries[len(entries)-1].Action).To(Equal("Action 1"))
		})
	})

	Describe("ReplaceAll", func() {
		It("should swap the whole log", func() {
			Expect(repo.Insert(entryAt(0))).To(Succeed())

			// Restored logs arrive most recent first.
			replacement := []activity.Entry{entryAt(11), entryAt(10)}
			Expect(repo.ReplaceAll(replacement)).To(Succeed())

			entries, err := repo.Recent()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Action).To(Equal("Action 11"))
			Expect(entries[1].Action).To(Equal("Action 10"))
		})
	})

	Describe("Clear", func() {
		It("should leave the log empty", func() {
			Expect(repo.Insert(entryAt(0))).To(Succeed())
			Expect(repo.Clear()).To(Succeed())

			entries, err := repo.Recent()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})
})
