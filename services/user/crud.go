package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "citizenhub/database/repository/user"
	"citizenhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

const maxUsersPageLimit = 100

// GetUserByID returns the user without credential fields.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByIDWithProjection(ctx, userID, userRepo.SafeProjection)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile replaces the stored profile and optionally the name and
// preferred language.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error) {
	updateFields := bson.M{"updatedAt": s.now()}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			var verrs models.ValidationErrors
			verrs.Add("name", "name cannot be blank")
			return nil, verrs
		}
		updateFields["name"] = name
	}
	if update.PreferredLanguage != nil {
		updateFields["preferredLanguage"] = models.NormalizeLanguage(*update.PreferredLanguage)
	}
	if update.Profile != nil {
		updateFields["profile"] = *update.Profile
	}
	if len(updateFields) == 1 {
		var verrs models.ValidationErrors
		verrs.Add("profile", "no updatable fields provided")
		return nil, verrs
	}

	if err := s.Repo.UpdateSetDocument(ctx, userID, updateFields); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.GetUserByID(ctx, userID)
}

// GetAllUsers returns one page of users, newest first.
func (s *DefaultUserService) GetAllUsers(ctx context.Context, page, limit int) ([]models.User, models.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxUsersPageLimit {
		limit = maxUsersPageLimit
	}
	users, total, err := s.Repo.ListWithProjection(ctx, page, limit, userRepo.SafeProjection)
	if err != nil {
		return nil, models.Page{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, models.NewPage(page, limit, total), nil
}
