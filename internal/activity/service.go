package activity

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo RepositoryAPI
}

func NewService(repo RepositoryAPI) *Service {
	return &Service{repo: repo}
}

// Record appends an entry for a user-attributed action. Entries without a
// user name are dropped: anonymous traffic never shows up in the log.
func (s *Service) Record(userName, action string) error {
	if userName == "" {
		return nil
	}
	return s.repo.Insert(Entry{
		ID:        uuid.New().String(),
		UserName:  userName,
		Action:    action,
		Timestamp: time.Now(),
	})
}

// Recent returns the log, most recent first, capped at MaxEntries.
func (s *Service) Recent() ([]Entry, error) {
	return s.repo.Recent()
}

// ReplaceAll swaps the whole log, used by backup restore. The incoming
// entries are trimmed to the cap, keeping the most recent.
func (s *Service) ReplaceAll(entries []Entry) error {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return s.repo.ReplaceAll(entries)
}

func (s *Service) Clear() error {
	return s.repo.Clear()
}
