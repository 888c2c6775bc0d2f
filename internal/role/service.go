package role

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
	"github.com/tranyenminhbd/docuflow/internal/permission"
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

func (s *Service) List() ([]Role, error) {
	roles, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	result := make([]Role, 0, len(roles))
	for _, r := range roles {
		result = append(result, *r)
	}
	return result, nil
}

func (s *Service) Get(id string) (*Role, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(actorName string, dto RoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &Role{
		ID:          uuid.New().String(),
		Name:        dto.Name,
		Description: dto.Description,
		Permissions: dto.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(r); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Created role: %s", r.Name))
	return r, nil
}

// Update edits a role's name and matrix. The super admin role is off limits:
// its authority comes from its identity, not its stored flags, and renaming
// or reshaping it would only mislead.
func (s *Service) Update(actorName string, id string, dto RoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if id == permission.SuperAdminRoleID {
		return nil, internal.ErrPermissionDenied
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	r.Name = dto.Name
	r.Description = dto.Description
	r.Permissions = dto.Permissions
	r.UpdatedAt = time.Now()

	if err := s.repo.Update(r); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Updated role: %s", r.Name))
	return r, nil
}

func (s *Service) Delete(actorName string, id string) error {
	if id == permission.SuperAdminRoleID {
		return internal.ErrPermissionDenied
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recordActivity(actorName, fmt.Sprintf("Deleted role: %s", r.Name))
	return nil
}

func (s *Service) recordActivity(actorName, action string) {
	if s.eventBus == nil || actorName == "" {
		return
	}
	s.eventBus.PublishSync(context.Background(), events.NewActivityRecordedEvent(actorName, action))
}
