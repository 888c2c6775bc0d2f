package settings

import (
	"context"
	"time"

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

func (s *Service) Get() (*AppConfig, error) {
	return s.repo.Get()
}

func (s *Service) Update(actorName string, dto UpdateConfigDTO) (*AppConfig, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.repo.Get()
	if err != nil {
		return nil, err
	}

	cfg.CompanyName = dto.CompanyName
	cfg.ThemeColor = dto.ThemeColor
	cfg.DeveloperName = dto.DeveloperName
	cfg.DeveloperURL = dto.DeveloperURL
	cfg.UpdatedAt = time.Now()

	if err := s.repo.Save(cfg); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, "Updated app configuration")
	return cfg, nil
}

func (s *Service) SetLogo(actorName string, logoURL string) (*AppConfig, error) {
	cfg, err := s.repo.Get()
	if err != nil {
		return nil, err
	}

	cfg.LogoURL = logoURL
	cfg.UpdatedAt = time.Now()

	if err := s.repo.Save(cfg); err != nil {
		return nil, err
	}

	s.recordActivity(actorName, "Updated company logo")
	return cfg, nil
}

// Replace overwrites the configuration wholesale, used by backup restore.
func (s *Service) Replace(cfg AppConfig) error {
	current, err := s.repo.Get()
	if err != nil {
		return err
	}

	current.CompanyName = cfg.CompanyName
	current.ThemeColor = cfg.ThemeColor
	current.LogoURL = cfg.LogoURL
	current.DeveloperName = cfg.DeveloperName
	current.DeveloperURL = cfg.DeveloperURL
	current.UpdatedAt = time.Now()
	return s.repo.Save(current)
}

// Reset restores the defaults.
func (s *Service) Reset() error {
	return s.Replace(DefaultConfig())
}

func (s *Service) recordActivity(actorName, action string) {
	if s.eventBus == nil || actorName == "" {
		return
	}
	s.eventBus.PublishSync(context.Background(), events.NewActivityRecordedEvent(actorName, action))
}
