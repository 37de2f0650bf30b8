package directory

import (
	"context"

	"citizenhub/models"
)

// DirectoryService defines business logic for the service directory.
type DirectoryService interface {
	// CreateService validates draft and stores it. A taken shortName yields ErrSlugTaken.
	CreateService(ctx context.Context, draft models.ServiceDraft, actor string) (*models.Service, error)
	// GetService resolves idOrSlug in any status.
	GetService(ctx context.Context, idOrSlug string) (*models.Service, error)
	// GetServiceDetails returns the public, localized view and counts a view.
	GetServiceDetails(ctx context.Context, idOrSlug, lang string) (*ServiceDetail, error)
	// ListServices returns one page of localized summaries.
	ListServices(ctx context.Context, q ListQuery) (*ServiceList, error)
	// CategoryCounts counts active services per category.
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)

	// UpdateService applies a partial update and re-validates the aggregate.
	UpdateService(ctx context.Context, idOrSlug string, u models.ServiceUpdate, actor string) (*models.Service, error)
	// ChangeStatus moves a service through its lifecycle.
	ChangeStatus(ctx context.Context, idOrSlug string, status models.ServiceStatus, actor string) (*models.Service, error)
	// DeprecateService is the soft delete.
	DeprecateService(ctx context.Context, idOrSlug, actor string) (*models.Service, error)
	// BatchChangeStatus moves every id to status atomically.
	BatchChangeStatus(ctx context.Context, ids []string, status models.ServiceStatus, actor string) (int, error)
	// PermanentlyDeleteService removes the document when confirmToken matches
	// the configured token.
	PermanentlyDeleteService(ctx context.Context, idOrSlug, confirmToken string) error
	// UpdateReviewStats stores a recomputed rating summary.
	UpdateReviewStats(ctx context.Context, serviceID string, averageRating float64, reviewCount int64) error

	// CheckEligibility evaluates an active service's criteria against profile.
	CheckEligibility(ctx context.Context, idOrSlug string, profile models.UserProfile, lang string) (*models.EligibilityVerdict, error)
	// CalculateFees totals an active service's fees for profile.
	CalculateFees(ctx context.Context, idOrSlug string, profile models.UserProfile, lang string) (*models.FeeResult, error)
	// ValidateDocuments checks docs against the service's requirements.
	ValidateDocuments(ctx context.Context, idOrSlug string, docs []models.SubmittedDocument, lang string) (*models.DocumentValidation, error)
	// StatusInfo renders the application-status template for code.
	StatusInfo(ctx context.Context, idOrSlug, code, lang string) (*models.StatusInfo, error)
	// FAQs lists the service's questions in lang.
	FAQs(ctx context.Context, idOrSlug, lang string) ([]FAQView, error)
}
