package models

import "time"

const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"
)

// User is a registered account. PasswordHash and TokenHash never leave the
// server.
type User struct {
	ID                string      `bson:"id" json:"id"`
	Name              string      `bson:"name" json:"name"`
	Email             string      `bson:"email" json:"email"`
	PhoneNumber       string      `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Role              string      `bson:"role" json:"role"`
	PreferredLanguage string      `bson:"preferredLanguage" json:"preferredLanguage"`
	Profile           UserProfile `bson:"profile" json:"profile"`
	PasswordHash      string      `bson:"passwordHash,omitempty" json:"-"`
	TokenHash         string      `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt         time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// UserRegistration is the public sign-up payload.
type UserRegistration struct {
	Name              string       `json:"name" binding:"required,min=2,max=100"`
	Email             string       `json:"email" binding:"required,email"`
	Password          string       `json:"password" binding:"required,min=8,max=72"`
	PhoneNumber       string       `json:"phoneNumber" binding:"omitempty,e164"`
	PreferredLanguage string       `json:"preferredLanguage"`
	Profile           *UserProfile `json:"profile"`
}

// UserLogin is the credentials payload.
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate replaces the stored profile and optionally the display name
// and preferred language.
type ProfileUpdate struct {
	Name              *string      `json:"name" binding:"omitempty,min=2,max=100"`
	PreferredLanguage *string      `json:"preferredLanguage"`
	Profile           *UserProfile `json:"profile"`
}
