package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "citizenhub/database/repository/user"
	"citizenhub/models"
	"citizenhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a citizen account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistration) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		var verrs models.ValidationErrors
		verrs.Add("password", err.Error())
		return nil, verrs
	}

	if _, err := s.Repo.GetByEmailWithProjection(ctx, email, bson.M{"id": 1}); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	u := &models.User{
		ID:                uuid.New().String(),
		Name:              req.Name,
		Email:             email,
		PhoneNumber:       req.PhoneNumber,
		Role:              roleFor(email),
		PreferredLanguage: models.NormalizeLanguage(req.PreferredLanguage),
		PasswordHash:      string(hashedPassword),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.Profile != nil {
		u.Profile = *req.Profile
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	utils.GetLogger().Info("user registered", zap.String("userID", u.ID), zap.String("role", u.Role))

	return s.issueToken(ctx, u)
}
