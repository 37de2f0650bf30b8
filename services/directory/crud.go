package directory

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	serviceRepo "citizenhub/database/repository/service"
	"citizenhub/models"
	"citizenhub/utils"

	"go.uber.org/zap"
)

// maxBatchSize bounds BatchChangeStatus.
const maxBatchSize = 100

// CreateService validates the draft, rejects a taken shortName and stores it.
func (s *DefaultDirectoryService) CreateService(ctx context.Context, draft models.ServiceDraft, actor string) (*models.Service, error) {
	svc, err := models.NewService(draft, actor, s.now())
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByIDOrSlug(ctx, svc.ShortName); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, serviceRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check shortName: %w", err)
	}

	if err := s.Repo.Create(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	utils.GetLogger().Info("service created",
		zap.String("id", svc.ID), zap.String("shortName", svc.ShortName), zap.String("actor", actor))
	return svc, nil
}

// UpdateService applies u on top of the stored service.
func (s *DefaultDirectoryService) UpdateService(ctx context.Context, idOrSlug string, u models.ServiceUpdate, actor string) (*models.Service, error) {
	current, err := s.fresh(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	next, err := current.ApplyUpdate(u, actor, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ChangeStatus moves one service to status.
func (s *DefaultDirectoryService) ChangeStatus(ctx context.Context, idOrSlug string, status models.ServiceStatus, actor string) (*models.Service, error) {
	current, err := s.fresh(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	next, err := current.WithStatus(status, actor, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("service status changed",
		zap.String("id", next.ID), zap.String("from", string(current.Status)),
		zap.String("to", string(status)), zap.String("actor", actor))
	return next, nil
}

// DeprecateService soft-deletes a service.
func (s *DefaultDirectoryService) DeprecateService(ctx context.Context, idOrSlug, actor string) (*models.Service, error) {
	return s.ChangeStatus(ctx, idOrSlug, models.StatusDeprecated, actor)
}

// BatchChangeStatus validates ids up front, then applies the status to all of
// them in one transaction. It returns the number of services updated.
func (s *DefaultDirectoryService) BatchChangeStatus(ctx context.Context, ids []string, status models.ServiceStatus, actor string) (int, error) {
	var verrs models.ValidationErrors
	if !status.IsValid() {
		verrs.Addf("status", "unknown status %q", status)
	}
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	switch {
	case len(unique) == 0:
		verrs.Add("ids", "at least one id is required")
	case len(unique) > maxBatchSize:
		verrs.Addf("ids", "at most %d ids per batch", maxBatchSize)
	}
	if err := verrs.Err(); err != nil {
		return 0, err
	}

	if err := s.Repo.BatchUpdateStatus(ctx, unique, status, actor, s.now()); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return 0, fmt.Errorf("%v: %w", err, ErrServiceNotFound)
		}
		return 0, fmt.Errorf("failed to update statuses: %w", err)
	}

	if s.Cache != nil {
		for _, id := range unique {
			if svc, err := s.Repo.GetByIDOrSlug(ctx, id); err == nil {
				s.Cache.Invalidate(ctx, svc)
			}
		}
	}
	utils.GetLogger().Info("batch status change",
		zap.Int("count", len(unique)), zap.String("status", string(status)), zap.String("actor", actor))
	return len(unique), nil
}

// PermanentlyDeleteService hard-deletes a service when confirmToken matches
// the configured token.
func (s *DefaultDirectoryService) PermanentlyDeleteService(ctx context.Context, idOrSlug, confirmToken string) error {
	if s.DeleteToken == "" {
		return ErrPermanentDeleteDisabled
	}
	if subtle.ConstantTimeCompare([]byte(confirmToken), []byte(s.DeleteToken)) != 1 {
		return ErrPermanentDeleteDenied
	}

	svc, err := s.fresh(ctx, idOrSlug)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, svc.ID); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}
	s.invalidate(ctx, svc)
	utils.GetLogger().Warn("service permanently deleted", zap.String("id", svc.ID), zap.String("shortName", svc.ShortName))
	return nil
}

// fresh reads from the repository, bypassing the cache, for read-modify-write.
func (s *DefaultDirectoryService) fresh(ctx context.Context, idOrSlug string) (*models.Service, error) {
	svc, err := s.Repo.GetByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to load service %s: %w", idOrSlug, err)
	}
	return svc, nil
}

func (s *DefaultDirectoryService) persist(ctx context.Context, svc *models.Service) error {
	if err := s.Repo.Replace(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to save service: %w", err)
	}
	s.invalidate(ctx, svc)
	return nil
}

// UpdateReviewStats stores a recomputed rating summary.
func (s *DefaultDirectoryService) UpdateReviewStats(ctx context.Context, serviceID string, averageRating float64, reviewCount int64) error {
	if err := s.Repo.UpdateStats(ctx, serviceID, averageRating, reviewCount); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("failed to update review stats: %w", err)
	}
	if s.Cache != nil {
		if svc, err := s.Repo.GetByIDOrSlug(ctx, serviceID); err == nil {
			s.Cache.Invalidate(ctx, svc)
		}
	}
	return nil
}
