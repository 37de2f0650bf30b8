package userRepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"citizenhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

var _ UserRepository = (*InMemory)(nil)

// InMemory is a UserRepository backed by a map. Exclusion projections on the
// credential fields are honoured; other projections return the full user.
type InMemory struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[string]models.User)}
}

func project(u models.User, projection bson.M) *models.User {
	if v, ok := projection["passwordHash"]; ok && v == 0 {
		u.PasswordHash = ""
	}
	if v, ok := projection["tokenHash"]; ok && v == 0 {
		u.TokenHash = ""
	}
	return &u
}

func (m *InMemory) GetByIDWithProjection(_ context.Context, id string, projection bson.M) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return project(u, projection), nil
}

func (m *InMemory) GetByEmailWithProjection(_ context.Context, email string, projection bson.M) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return project(u, projection), nil
		}
	}
	return nil, ErrNotFound
}

func (m *InMemory) ListWithProjection(_ context.Context, page, limit int, projection bson.M) ([]models.User, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, *project(u, projection))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.User{}, int64(len(all)), nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *InMemory) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == user.ID || u.Email == user.Email {
			return ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

// UpdateSetDocument understands the fields the user service writes.
func (m *InMemory) UpdateSetDocument(_ context.Context, id string, updateDoc bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range updateDoc {
		switch key {
		case "name":
			u.Name = value.(string)
		case "preferredLanguage":
			u.PreferredLanguage = value.(string)
		case "profile":
			u.Profile = value.(models.UserProfile)
		case "tokenHash":
			u.TokenHash = value.(string)
		case "passwordHash":
			u.PasswordHash = value.(string)
		case "role":
			u.Role = value.(string)
		case "updatedAt":
			u.UpdatedAt = value.(time.Time)
		default:
			return fmt.Errorf("in-memory user repo cannot set %q", key)
		}
	}
	m.users[id] = u
	return nil
}
