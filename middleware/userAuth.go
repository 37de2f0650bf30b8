package middleware

import (
	"errors"
	"net/http"
	"strings"

	userRepo "citizenhub/database/repository/user"
	"citizenhub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthUserMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

var tokenProjection = bson.M{"id": 1, "role": 1, "tokenHash": 1}

// JWTAuthUserMiddleware validates the bearer token and checks that it is the
// user's current one, first against the auth cache and then against the
// stored hash. With optional set, requests without an Authorization header
// pass through anonymously; a header that is present must still be valid.
func JWTAuthUserMiddleware(repo userRepo.UserRepository, sessions utils.SessionStore, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && optional {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "")
			return
		}
		computedHash := utils.HashToken(tokenString)

		if sessions != nil {
			cached, err := sessions.Lookup(ctx, claims.Subject)
			switch {
			case err == nil && cached == computedHash:
				setIdentity(c, claims.Subject, claims.Role)
				c.Next()
				return
			case err == nil:
				utils.JSONError(c, http.StatusUnauthorized, "Token mismatch", "")
				return
			case !errors.Is(err, utils.ErrSessionNotCached):
				logger.Warn("auth cache unavailable, falling back to database", zap.Error(err))
			}
		}

		usr, err := repo.GetByIDWithProjection(ctx, claims.Subject, tokenProjection)
		if err != nil {
			if !errors.Is(err, userRepo.ErrNotFound) {
				logger.Error("user lookup failed during authentication", zap.String("userID", claims.Subject), zap.Error(err))
			}
			utils.JSONError(c, http.StatusUnauthorized, "Authentication error", "")
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			utils.JSONError(c, http.StatusUnauthorized, "Token mismatch", "")
			return
		}

		if sessions != nil {
			if err := sessions.Save(ctx, usr.ID, computedHash); err != nil {
				logger.Warn("auth cache not refreshed", zap.Error(err))
			}
		}
		setIdentity(c, usr.ID, usr.Role)
		c.Next()
	}
}

func setIdentity(c *gin.Context, userID, role string) {
	c.Set(ContextUserID, userID)
	c.Set(ContextRole, role)
}
