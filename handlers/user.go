package handlers

import (
	"net/http"

	"citizenhub/middleware"
	"citizenhub/models"
	"citizenhub/services/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	UserService user.UserService
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegistration
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, "registration failed", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.UserLogin
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "authentication failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /api/users/me.
func (h *UserHandler) MeHandler(c *gin.Context) {
	u, err := h.UserService.GetUserByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, "failed to load user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfileHandler handles PUT /api/users/me/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.UserService.UpdateProfile(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		respondError(c, "failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// LogoutHandler handles DELETE /api/users/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), c.GetString(middleware.ContextUserID)); err != nil {
		respondError(c, "logout failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
