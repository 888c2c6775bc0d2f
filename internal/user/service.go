package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/core/events"
)

type Service struct {
	repo     RepositoryAPI
	hasher   PasswordHasher
	eventBus *events.EventBus
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, eventBus *events.EventBus) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		eventBus: eventBus,
	}
}

func (s *Service) List() ([]User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	result := make([]User, 0, len(users))
	for _, u := range users {
		result = append(result, *u)
	}
	return result, nil
}

func (s *Service) Get(id string) (*User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(actorName string, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, _ := s.repo.GetByEmail(dto.Email); existing != nil {
		return nil, internal.NewConflictError("email already in use", internal.ErrCodeInvalidEmail)
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New().String(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		DepartmentID: dto.DepartmentID,
		RoleID:       dto.RoleID,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Created user: %s", u.Name))
	return u, nil
}

func (s *Service) Update(actorName string, id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Email != u.Email {
		if existing, _ := s.repo.GetByEmail(dto.Email); existing != nil {
			return nil, internal.NewConflictError("email already in use", internal.ErrCodeInvalidEmail)
		}
	}

	u.Name = dto.Name
	u.Email = dto.Email
	u.DepartmentID = dto.DepartmentID
	u.RoleID = dto.RoleID
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("Updated user: %s", u.Name))
	return u, nil
}

func (s *Service) ResetPassword(actorName string, id string, dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		return err
	}

	s.recordActivity(actorName, fmt.Sprintf("Reset password for user: %s", u.Name))
	return nil
}

// ToggleStatus flips an account between active and suspended. Suspension
// takes effect on the user's next request: their session fails to restore.
func (s *Service) ToggleStatus(actorName string, id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	action := "Suspended"
	if u.IsSuspended() {
		u.Status = StatusActive
		action = "Activated"
	} else {
		u.Status = StatusSuspended
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, fmt.Sprintf("%s user: %s", action, u.Name))
	return u, nil
}

func (s *Service) Delete(actorName string, id string) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.recordActivity(actorName, fmt.Sprintf("Deleted user: %s", u.Name))
	return nil
}

// UpdateProfile is the self-service path: the id comes from the session, not
// the request, so a user can only ever touch their own record.
func (s *Service) UpdateProfile(id string, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	u.Name = dto.Name
	if dto.Password != "" {
		hash, err := s.hasher.HashPassword(dto.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		return nil, err
	}

	s.recordActivity(u.Name, "Updated profile")
	return u, nil
}

func (s *Service) SetSidebarCollapsed(id string, collapsed bool) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	u.SidebarCollapsed = collapsed
	u.UpdatedAt = time.Now()
	return s.repo.Update(u)
}

func (s *Service) recordActivity(actorName, action string) {
	if s.eventBus == nil || actorName == "" {
		return
	}
	s.eventBus.PublishSync(context.Background(), events.NewActivityRecordedEvent(actorName, action))
}
