package review

import (
	"context"
	"errors"
	"time"

	reviewRepo "citizenhub/database/repository/review"
	"citizenhub/models"

	"github.com/hibiken/asynq"
)

var ErrDuplicateReview = errors.New("you have already reviewed this service")

type ReviewService interface {
	CreateReview(ctx context.Context, serviceIDOrSlug string, author *models.User, input models.ReviewInput) (*models.Review, error)
	ListReviews(ctx context.Context, serviceIDOrSlug string, page, limit int) ([]models.Review, models.Page, error)
	RecomputeRating(ctx context.Context, serviceID string) error
}

// Directory is the part of the directory service reviews depend on.
type Directory interface {
	GetService(ctx context.Context, idOrSlug string) (*models.Service, error)
	UpdateReviewStats(ctx context.Context, serviceID string, averageRating float64, reviewCount int64) error
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo      reviewRepo.ReviewRepository
	Directory Directory
	// Queue is optional; without it ratings are recomputed inline.
	Queue Enqueuer
	Now   func() time.Time
}

func NewReviewService(repo reviewRepo.ReviewRepository, directory Directory, queue Enqueuer) *DefaultReviewService {
	return &DefaultReviewService{Repo: repo, Directory: directory, Queue: queue, Now: time.Now}
}
