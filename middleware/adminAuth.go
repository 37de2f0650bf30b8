package middleware

import (
	"net/http"

	"citizenhub/models"
	"citizenhub/utils"

	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after JWTAuthUserMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserID) == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
			return
		}
		if c.GetString(ContextRole) != models.RoleAdmin {
			utils.JSONError(c, http.StatusForbidden, "Admin access required", "")
			return
		}
		c.Next()
	}
}
