package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	serviceRepo "citizenhub/database/repository/service"
	"citizenhub/models"
	"citizenhub/services/rules"
)

var _ DirectoryService = (*DefaultDirectoryService)(nil)

// DefaultDirectoryService is the production implementation.
type DefaultDirectoryService struct {
	Repo   serviceRepo.ServiceRepository
	Engine *rules.Engine
	// Cache is optional.
	Cache ServiceCache
	// DeleteToken gates PermanentlyDeleteService; empty disables it.
	DeleteToken string
	Now         func() time.Time
}

// NewDirectoryService wires a directory service on the wall clock.
func NewDirectoryService(repo serviceRepo.ServiceRepository, engine *rules.Engine, cache ServiceCache, deleteToken string) *DefaultDirectoryService {
	return &DefaultDirectoryService{
		Repo:        repo,
		Engine:      engine,
		Cache:       cache,
		DeleteToken: deleteToken,
		Now:         time.Now,
	}
}

func (s *DefaultDirectoryService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// load fetches a service through the cache.
func (s *DefaultDirectoryService) load(ctx context.Context, idOrSlug string) (*models.Service, error) {
	if s.Cache != nil {
		if svc, ok := s.Cache.Get(ctx, idOrSlug); ok {
			return svc, nil
		}
	}
	svc, err := s.Repo.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to load service %s: %w", idOrSlug, err)
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, svc)
	}
	return svc, nil
}

// loadPublic hides drafts from public callers.
func (s *DefaultDirectoryService) loadPublic(ctx context.Context, idOrSlug string) (*models.Service, error) {
	svc, err := s.load(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if svc.Status == models.StatusDraft {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// loadActive rejects services that cannot be evaluated.
func (s *DefaultDirectoryService) loadActive(ctx context.Context, idOrSlug string) (*models.Service, error) {
	svc, err := s.loadPublic(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive() {
		return nil, fmt.Errorf("%s is %s: %w", svc.ShortName, svc.Status, ErrServiceNotActive)
	}
	return svc, nil
}

func (s *DefaultDirectoryService) invalidate(ctx context.Context, svc *models.Service) {
	if s.Cache != nil && svc != nil {
		s.Cache.Invalidate(ctx, svc)
	}
}

// GetService resolves idOrSlug in any status.
func (s *DefaultDirectoryService) GetService(ctx context.Context, idOrSlug string) (*models.Service, error) {
	return s.load(ctx, idOrSlug)
}
