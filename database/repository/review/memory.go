package reviewRepo

import (
	"context"
	"sort"
	"sync"

	"citizenhub/models"
)

var _ ReviewRepository = (*InMemory)(nil)

// InMemory is a ReviewRepository backed by a slice.
type InMemory struct {
	mu      sync.RWMutex
	reviews []models.Review
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (m *InMemory) Create(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ServiceID == review.ServiceID && r.UserID == review.UserID {
			return ErrDuplicate
		}
	}
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *InMemory) ListByService(_ context.Context, serviceID string, page, limit int) ([]models.Review, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []models.Review
	for _, r := range m.reviews {
		if r.ServiceID == serviceID {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if page < 1 {
		page = 1
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.Review{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *InMemory) RatingSummary(_ context.Context, serviceID string) (float64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum, count int64
	for _, r := range m.reviews {
		if r.ServiceID == serviceID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
