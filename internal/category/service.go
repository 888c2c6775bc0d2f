package category

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

func (s *Service) List() ([]Category, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		result = append(result, *c)
	}
	return result, nil
}

func (s *Service) Get(id string) (*Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(actorName string, dto CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Category{
		ID:        uuid.New().String(),
		Name:      dto.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(c); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Created category: %s", c.Name))
	return c, nil
}

func (s *Service) Update(actorName string, id string, dto CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	c.Name = dto.Name
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Updated category: %s", c.Name))
	return c, nil
}

func (s *Service) Delete(actorName string, id string) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recordActivity(actorName, fmt.Sprintf("Deleted category: %s", c.Name))
	return nil
}

func (s *Service) recordActivity(actorName, action string) {
	if s.eventBus == nil || actorName == "" {
		return
	}
	s.eventBus.PublishSync(context.Background(), events.NewActivityRecordedEvent(actorName, action))
}
