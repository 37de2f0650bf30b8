package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reviewRepo "citizenhub/database/repository/review"
	"citizenhub/models"
	"citizenhub/services/directory"
	"citizenhub/services/tasks"
	"citizenhub/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	defaultReviewLimit = 20
	maxReviewLimit     = 100
)

// CreateReview stores author's review of an active service and schedules a
// rating recompute.
func (s *DefaultReviewService) CreateReview(ctx context.Context, serviceIDOrSlug string, author *models.User, input models.ReviewInput) (*models.Review, error) {
	svc, err := s.Directory.GetService(ctx, serviceIDOrSlug)
	if err != nil {
		return nil, err
	}
	if svc.Status == models.StatusDraft {
		return nil, directory.ErrServiceNotFound
	}
	if !svc.IsActive() {
		return nil, fmt.Errorf("%s is %s: %w", svc.ShortName, svc.Status, directory.ErrServiceNotActive)
	}
	if input.Rating < 1 || input.Rating > 5 {
		var verrs models.ValidationErrors
		verrs.Add("rating", "rating must be between 1 and 5")
		return nil, verrs
	}

	lang := input.Language
	if lang == "" {
		lang = author.PreferredLanguage
	}
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	r := &models.Review{
		ID:        uuid.New().String(),
		ServiceID: svc.ID,
		UserID:    author.ID,
		UserName:  author.Name,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		Language:  models.NormalizeLanguage(lang),
		CreatedAt: now,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.scheduleRecompute(ctx, svc.ID)
	return r, nil
}

// scheduleRecompute enqueues a recompute task, or recomputes inline when no
// queue is configured or the enqueue fails.
func (s *DefaultReviewService) scheduleRecompute(ctx context.Context, serviceID string) {
	logger := utils.GetLogger()
	if s.Queue != nil {
		task, opts, err := tasks.NewRecomputeRatingTask(serviceID)
		if err == nil {
			_, err = s.Queue.Enqueue(task, opts...)
		}
		if err == nil || errors.Is(err, asynq.ErrDuplicateTask) {
			return
		}
		logger.Error("Failed to enqueue rating task", zap.String("serviceId", serviceID), zap.Error(err))
	}
	if err := s.RecomputeRating(ctx, serviceID); err != nil {
		logger.Error("inline rating recompute failed", zap.String("serviceId", serviceID), zap.Error(err))
	}
}

// ListReviews returns one page of reviews, newest first. Drafts have none.
func (s *DefaultReviewService) ListReviews(ctx context.Context, serviceIDOrSlug string, page, limit int) ([]models.Review, models.Page, error) {
	svc, err := s.Directory.GetService(ctx, serviceIDOrSlug)
	if err != nil {
		return nil, models.Page{}, err
	}
	if svc.Status == models.StatusDraft {
		return nil, models.Page{}, directory.ErrServiceNotFound
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultReviewLimit
	}
	if limit > maxReviewLimit {
		limit = maxReviewLimit
	}
	reviews, total, err := s.Repo.ListByService(ctx, svc.ID, page, limit)
	if err != nil {
		return nil, models.Page{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, models.NewPage(page, limit, total), nil
}

// RecomputeRating aggregates a service's reviews into its stats.
func (s *DefaultReviewService) RecomputeRating(ctx context.Context, serviceID string) error {
	avg, count, err := s.Repo.RatingSummary(ctx, serviceID)
	if err != nil {
		return err
	}
	if err := s.Directory.UpdateReviewStats(ctx, serviceID, avg, count); err != nil {
		return err
	}
	utils.GetLogger().Debug("rating recomputed",
		zap.String("serviceId", serviceID), zap.Float64("average", avg), zap.Int64("count", count))
	return nil
}
