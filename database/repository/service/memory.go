package serviceRepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"citizenhub/models"
)

var _ ServiceRepository = (*InMemory)(nil)

// InMemory is a ServiceRepository backed by a map, for tests and local runs
// without MongoDB.
type InMemory struct {
	mu       sync.RWMutex
	services map[string]models.Service
	views    map[string]int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		services: make(map[string]models.Service),
		views:    make(map[string]int64),
	}
}

func (m *InMemory) find(idOrSlug string) (models.Service, bool) {
	if svc, ok := m.services[strings.TrimSpace(idOrSlug)]; ok {
		return svc, true
	}
	slug := models.NormalizeSlug(idOrSlug)
	for _, svc := range m.services {
		if svc.ShortName == slug {
			return svc, true
		}
	}
	return models.Service{}, false
}

func (m *InMemory) GetByIDOrSlug(_ context.Context, idOrSlug string) (*models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	svc, ok := m.find(idOrSlug)
	if !ok {
		return nil, ErrNotFound
	}
	svc.Stats.Views = m.views[svc.ID]
	return &svc, nil
}

func matches(svc models.Service, f ServiceFilter) bool {
	if f.Category != "" && svc.Category != f.Category {
		return false
	}
	if f.Status != "" && svc.Status != f.Status {
		return false
	}
	if f.Jurisdiction != "" && svc.Jurisdiction != f.Jurisdiction {
		return false
	}
	if state := strings.TrimSpace(f.State); state != "" && svc.Jurisdiction != models.JurisdictionCentral {
		found := false
		for _, st := range svc.States {
			if strings.EqualFold(st, state) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := []string{svc.ShortName, svc.Name[models.DefaultLanguage], svc.Name[models.NormalizeLanguage(f.Lang)]}
		hay = append(hay, svc.Tags...)
		for _, h := range hay {
			if strings.Contains(strings.ToLower(h), q) {
				return true
			}
		}
		return false
	}
	return true
}

func (m *InMemory) List(_ context.Context, f ServiceFilter) ([]models.Service, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []models.Service
	for _, svc := range m.services {
		if matches(svc, f) {
			svc.Stats.Views = m.views[svc.ID]
			all = append(all, svc)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := int64(len(all))
	page := f.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * f.Limit
	if start >= len(all) {
		return []models.Service{}, total, nil
	}
	end := start + f.Limit
	if f.Limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *InMemory) CategoryCounts(_ context.Context, status models.ServiceStatus) (map[models.ServiceCategory]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[models.ServiceCategory]int64)
	for _, svc := range m.services {
		if svc.Status == status {
			out[svc.Category]++
		}
	}
	return out, nil
}

func (m *InMemory) Create(_ context.Context, svc *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[svc.ID]; ok {
		return ErrDuplicate
	}
	if _, ok := m.find(svc.ShortName); ok {
		return ErrDuplicate
	}
	m.services[svc.ID] = *svc
	return nil
}

func (m *InMemory) Replace(_ context.Context, svc *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.services[svc.ID]
	if !ok {
		return ErrNotFound
	}
	next := *svc
	next.Stats = current.Stats
	m.services[svc.ID] = next
	return nil
}

func (m *InMemory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return ErrNotFound
	}
	delete(m.services, id)
	delete(m.views, id)
	return nil
}

func (m *InMemory) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[id]++
	return nil
}

func (m *InMemory) UpdateStats(_ context.Context, id string, averageRating float64, reviewCount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc, ok := m.services[id]
	if !ok {
		return ErrNotFound
	}
	svc.Stats.AverageRating = averageRating
	svc.Stats.ReviewCount = reviewCount
	m.services[id] = svc
	return nil
}

// BatchUpdateStatus is all-or-nothing: every id is checked before any is changed.
func (m *InMemory) BatchUpdateStatus(_ context.Context, ids []string, status models.ServiceStatus, actor string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if _, ok := m.services[id]; !ok {
			return ErrNotFound
		}
	}
	for _, id := range ids {
		svc := m.services[id]
		svc.Status = status
		svc.UpdatedBy = actor
		svc.UpdatedAt = now
		if status == models.StatusDeprecated {
			svc.DeprecatedAt = &now
		} else {
			svc.DeprecatedAt = nil
		}
		m.services[id] = svc
	}
	return nil
}
