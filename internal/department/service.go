package department

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tranyenminhbd/docuflow/internal/core/events"
)

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
	}
}

func (s *Service) List() ([]Department, error) {
	departments, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	result := make([]Department, 0, len(departments))
	for _, d := range departments {
		result = append(result, *d)
	}
	return result, nil
}

func (s *Service) Get(id string) (*Department, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(actorName string, dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Department{
		ID:        uuid.New().String(),
		Name:      dto.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(d); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Created department: %s", d.Name))
	return d, nil
}

func (s *Service) Update(actorName string, id string, dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	d.Name = dto.Name
	d.UpdatedAt = time.Now()

	if err := s.repo.Update(d); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Updated department: %s", d.Name))
	return d, nil
}

// Delete removes the department only. Users and documents that referenced it
// keep their ids; the gaps surface as "N/A" in listings.
func (s *Service) Delete(actorName string, id string) error {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recordActivity(actorName, fmt.Sprintf("Deleted department: %s", d.Name))
	return nil
}

func (s *Service) recordActivity(actorName, action string) {
	if s.eventBus == nil || actorName == "" {
		return
	}
	s.eventBus.PublishSync(context.Background(), events.NewActivityRecordedEvent(actorName, action))
}
