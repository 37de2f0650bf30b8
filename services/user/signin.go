package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "citizenhub/database/repository/user"
	"citizenhub/models"
	"citizenhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies credentials and issues a new token. Any token issued
// earlier stops working.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmailWithProjection(ctx, normalizeEmail(email), nil)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, u)
}

// Logout revokes the user's current token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"tokenHash": "", "updatedAt": s.now()})
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.Sessions != nil {
		if err := s.Sessions.Revoke(ctx, userID); err != nil {
			utils.GetLogger().Error("Logout: failed to clear auth cache", zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}

// issueToken signs a token for u and records its hash in the user document
// and the auth cache.
func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, utils.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	now := s.now()

	if err := s.Repo.UpdateSetDocument(ctx, u.ID, bson.M{"tokenHash": tokenHash, "updatedAt": now}); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, u.ID, tokenHash); err != nil {
			// The middleware falls back to the stored hash.
			utils.GetLogger().Warn("auth cache not updated", zap.String("userID", u.ID), zap.Error(err))
		}
	}

	return &AuthResponse{
		ID:                u.ID,
		Token:             token,
		ExpiresAt:         now.Add(utils.AccessTokenTTL),
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		PreferredLanguage: u.PreferredLanguage,
	}, nil
}
