package user

import (
	"context"
	"time"

	userRepo "citizenhub/database/repository/user"
	"citizenhub/models"
	"citizenhub/utils"
)

type UserService interface {
	// Accounts
	Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	// Profile
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error)

	// Admin
	GetAllUsers(ctx context.Context, page, limit int) ([]models.User, models.Page, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Sessions utils.SessionStore
	Now      func() time.Time
}

func NewUserService(repo userRepo.UserRepository, sessions utils.SessionStore) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Sessions: sessions, Now: time.Now}
}

func (s *DefaultUserService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID                string    `json:"id"`
	Token             string    `json:"token"`
	ExpiresAt         time.Time `json:"expiresAt"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	PreferredLanguage string    `json:"preferredLanguage"`
}
