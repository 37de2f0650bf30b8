package userRepo

import (
	"context"
	"errors"

	"citizenhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

// SafeProjection hides credential fields.
var SafeProjection = bson.M{"passwordHash": 0, "tokenHash": 0}

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByIDWithProjection retrieves a user by its unique ID. Pass nil for
	// projection to retrieve the full document.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// GetByEmailWithProjection retrieves a user by email, or ErrNotFound.
	GetByEmailWithProjection(ctx context.Context, email string, projection bson.M) (*models.User, error)
	// ListWithProjection returns one page of users, newest first, and the total count.
	ListWithProjection(ctx context.Context, page, limit int, projection bson.M) ([]models.User, int64, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateSetDocument applies a $set of updateDoc to the user.
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
}
