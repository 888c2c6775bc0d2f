package activity

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestActivity(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Activity Module Suite")
}

type mockRepository struct {
	entries []Entry
}

func (m *mockRepository) Insert(entry Entry) error {
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > MaxEntries {
		m.entries = m.entries[:MaxEntries]
	}
	return nil
}

func (m *mockRepository) Recent() ([]Entry, error) {
	return m.entries, nil
}

func (m *mockRepository) ReplaceAll(entries []Entry) error {
	m.entries = entries
	return nil
}

func (m *mockRepository) Clear() error {
	m.entries = nil
	return nil
}

var _ = ginkgo.Describe("ActivityService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	ginkgo.BeforeEach(func() {
		repo = &mockRepository{}
		service = NewService(repo)
	})

	ginkgo.Describe("Record", func() {
		ginkgo.It("should stamp an id and timestamp on the entry", func() {
			err := service.Record("Alice Nguyen", "Created document: Welcome")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.entries).To(gomega.HaveLen(1))
			gomega.Expect(repo.entries[0].ID).ToNot(gomega.BeEmpty())
			gomega.Expect(repo.entries[0].Timestamp).ToNot(gomega.BeZero())
		})

		ginkgo.It("should drop entries without a user name", func() {
			err := service.Record("", "Anonymous poke")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.entries).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("ReplaceAll", func() {
		ginkgo.It("should trim an oversized restore to the cap", func() {
			oversized := make([]Entry, MaxEntries+10)
			err := service.ReplaceAll(oversized)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.entries).To(gomega.HaveLen(MaxEntries))
		})
	})
})
