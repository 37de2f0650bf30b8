package serviceRepo

import (
	"context"
	"errors"
	"time"

	"citizenhub/models"
)

var (
	// ErrNotFound is returned when no service matches the lookup.
	ErrNotFound = errors.New("service not found")
	// ErrDuplicate is returned when an insert collides with a unique index.
	ErrDuplicate = errors.New("service already exists")
)

// ServiceRepository defines methods for service data access.
type ServiceRepository interface {
	// GetByIDOrSlug resolves idOrSlug as a service id or a case-insensitive shortName.
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Service, error)
	// List returns one page of services matching filter and the total match count.
	List(ctx context.Context, filter ServiceFilter) ([]models.Service, int64, error)
	// CategoryCounts counts services with status per category.
	CategoryCounts(ctx context.Context, status models.ServiceStatus) (map[models.ServiceCategory]int64, error)
	// Create inserts a new service.
	Create(ctx context.Context, svc *models.Service) error
	// Replace overwrites the stored document with svc, matched on id.
	Replace(ctx context.Context, svc *models.Service) error
	// Delete removes a service document permanently.
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the view counter.
	IncrementViews(ctx context.Context, id string) error
	// UpdateStats stores recomputed review statistics.
	UpdateStats(ctx context.Context, id string, averageRating float64, reviewCount int64) error
	// BatchUpdateStatus moves every id to status in one transaction. Any
	// unknown id aborts the whole batch with ErrNotFound.
	BatchUpdateStatus(ctx context.Context, ids []string, status models.ServiceStatus, actor string, now time.Time) error
}

// ServiceFilter holds parameters for listing services. Empty fields do not filter.
type ServiceFilter struct {
	Category     models.ServiceCategory
	Status       models.ServiceStatus
	Jurisdiction models.Jurisdiction
	// State matches services offered in that state and every central service.
	State string
	// Query is matched case-insensitively against shortName, tags and the
	// name in Lang and English.
	Query string
	Lang  string
	Page  int
	Limit int
}
