package handlers

import (
	"net/http"

	"citizenhub/middleware"
	"citizenhub/models"
	"citizenhub/services/review"
	"citizenhub/services/user"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Reviews review.ReviewService
	Users   user.UserService
}

// ListReviews handles GET /api/services/:idOrSlug/reviews.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, page, err := h.Reviews.ListReviews(c.Request.Context(), c.Param("idOrSlug"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, "failed to list reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "pagination": page})
}

// CreateReview handles POST /api/services/:idOrSlug/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input models.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	author, err := h.Users.GetUserByID(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, "failed to load reviewer", err)
		return
	}
	r, err := h.Reviews.CreateReview(c.Request.Context(), c.Param("idOrSlug"), author, input)
	if err != nil {
		respondError(c, "failed to create review", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
