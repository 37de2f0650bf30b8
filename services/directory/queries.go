package directory

import (
	"context"
	"fmt"
	"sort"

	serviceRepo "citizenhub/database/repository/service"
	"citizenhub/models"
	"citizenhub/utils"

	"go.uber.org/zap"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ListQuery holds listing parameters as received from the caller.
type ListQuery struct {
	Category     string
	Status       string
	Jurisdiction string
	State        string
	Query        string
	Lang         string
	Page         int
	Limit        int
	// Admin lifts the active-only restriction.
	Admin bool
}

// ClampPage applies the default and maximum page size.
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func (q ListQuery) filter() (serviceRepo.ServiceFilter, error) {
	var verrs models.ValidationErrors
	f := serviceRepo.ServiceFilter{
		State: q.State,
		Query: q.Query,
		Lang:  models.NormalizeLanguage(q.Lang),
	}
	f.Page, f.Limit = ClampPage(q.Page, q.Limit)

	if q.Category != "" {
		f.Category = models.ServiceCategory(q.Category)
		if !f.Category.IsValid() {
			verrs.Addf("category", "unknown category %q", q.Category)
		}
	}
	if q.Jurisdiction != "" {
		f.Jurisdiction = models.Jurisdiction(q.Jurisdiction)
		if !f.Jurisdiction.IsValid() {
			verrs.Addf("jurisdiction", "unknown jurisdiction %q", q.Jurisdiction)
		}
	}
	switch {
	case !q.Admin:
		f.Status = models.StatusActive
	case q.Status != "":
		f.Status = models.ServiceStatus(q.Status)
		if !f.Status.IsValid() {
			verrs.Addf("status", "unknown status %q", q.Status)
		}
	}
	return f, verrs.Err()
}

// ListServices returns one page of localized summaries.
func (s *DefaultDirectoryService) ListServices(ctx context.Context, q ListQuery) (*ServiceList, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	services, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	out := &ServiceList{
		Services:   make([]ServiceSummary, 0, len(services)),
		Pagination: models.NewPage(f.Page, f.Limit, total),
	}
	for i := range services {
		out.Services = append(out.Services, summarize(&services[i], f.Lang))
	}
	return out, nil
}

// CategoryCounts returns every category with its count of active services,
// busiest first. Ties keep the fixed category order.
func (s *DefaultDirectoryService) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	counts, err := s.Repo.CategoryCounts(ctx, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	out := make([]CategoryCount, 0, len(models.ServiceCategories))
	for _, c := range models.ServiceCategories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// GetServiceDetails renders a service in lang and counts the view. A failed
// view increment is logged, not returned.
func (s *DefaultDirectoryService) GetServiceDetails(ctx context.Context, idOrSlug, lang string) (*ServiceDetail, error) {
	svc, err := s.loadPublic(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.IncrementViews(ctx, svc.ID); err != nil {
		utils.GetLogger().Warn("view count not updated", zap.String("id", svc.ID), zap.Error(err))
	}
	return detail(svc, models.NormalizeLanguage(lang)), nil
}

// FAQs lists a service's questions in lang.
func (s *DefaultDirectoryService) FAQs(ctx context.Context, idOrSlug, lang string) ([]FAQView, error) {
	svc, err := s.loadPublic(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return faqViews(svc.FAQs, models.NormalizeLanguage(lang)), nil
}
