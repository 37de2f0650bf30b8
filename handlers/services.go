package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"citizenhub/middleware"
	"citizenhub/models"
	"citizenhub/services/directory"
	"citizenhub/services/user"
	"citizenhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceHandler serves the public directory and the evaluation endpoints.
type ServiceHandler struct {
	Directory directory.DirectoryService
	Users     user.UserService
}

// requestLang reads ?lang= and falls back to the first Accept-Language tag.
func requestLang(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return ""
	}
	tag := strings.TrimSpace(strings.Split(header, ",")[0])
	tag = strings.Split(tag, ";")[0]
	return strings.Split(tag, "-")[0]
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// ListServices handles GET /api/services.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	list, err := h.Directory.ListServices(c.Request.Context(), directory.ListQuery{
		Category:     c.Query("category"),
		Jurisdiction: c.Query("jurisdiction"),
		State:        c.Query("state"),
		Query:        c.Query("q"),
		Lang:         requestLang(c),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, "failed to list services", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Categories handles GET /api/services/categories.
func (h *ServiceHandler) Categories(c *gin.Context) {
	counts, err := h.Directory.CategoryCounts(c.Request.Context())
	if err != nil {
		respondError(c, "failed to count categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": counts})
}

// GetService handles GET /api/services/:idOrSlug.
func (h *ServiceHandler) GetService(c *gin.Context) {
	d, err := h.Directory.GetServiceDetails(c.Request.Context(), c.Param("idOrSlug"), requestLang(c))
	if err != nil {
		respondError(c, "failed to load service", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// FAQs handles GET /api/services/:idOrSlug/faqs.
func (h *ServiceHandler) FAQs(c *gin.Context) {
	faqs, err := h.Directory.FAQs(c.Request.Context(), c.Param("idOrSlug"), requestLang(c))
	if err != nil {
		respondError(c, "failed to load faqs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

// StatusInfo handles GET /api/services/:idOrSlug/status/:code.
func (h *ServiceHandler) StatusInfo(c *gin.Context) {
	info, err := h.Directory.StatusInfo(c.Request.Context(), c.Param("idOrSlug"), c.Param("code"), requestLang(c))
	if err != nil {
		respondError(c, "failed to render status", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// evaluationProfile binds the request profile. For a signed-in caller the
// stored profile fills whatever the body leaves out, and the preferred
// language is used when none was requested.
func (h *ServiceHandler) evaluationProfile(c *gin.Context) (models.UserProfile, string, bool) {
	var profile models.UserProfile
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&profile); err != nil && !errors.Is(err, io.EOF) {
			respondBindError(c, err)
			return profile, "", false
		}
	}
	lang := requestLang(c)

	userID := c.GetString(middleware.ContextUserID)
	if userID == "" || h.Users == nil {
		return profile, lang, true
	}
	stored, err := h.Users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Warn("stored profile unavailable", zap.String("userID", userID), zap.Error(err))
		return profile, lang, true
	}
	if lang == "" {
		lang = stored.PreferredLanguage
	}
	return profile.MergeMissing(stored.Profile), lang, true
}

// CheckEligibility handles POST /api/services/:idOrSlug/check-eligibility.
func (h *ServiceHandler) CheckEligibility(c *gin.Context) {
	profile, lang, ok := h.evaluationProfile(c)
	if !ok {
		return
	}
	verdict, err := h.Directory.CheckEligibility(c.Request.Context(), c.Param("idOrSlug"), profile, lang)
	if err != nil {
		respondError(c, "failed to check eligibility", err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

// CalculateFees handles POST /api/services/:idOrSlug/calculate-fees.
func (h *ServiceHandler) CalculateFees(c *gin.Context) {
	profile, lang, ok := h.evaluationProfile(c)
	if !ok {
		return
	}
	result, err := h.Directory.CalculateFees(c.Request.Context(), c.Param("idOrSlug"), profile, lang)
	if err != nil {
		respondError(c, "failed to calculate fees", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type documentsRequest struct {
	Documents []models.SubmittedDocument `json:"documents" binding:"omitempty,dive"`
}

// ValidateDocuments handles POST /api/services/:idOrSlug/validate-documents.
func (h *ServiceHandler) ValidateDocuments(c *gin.Context) {
	var body documentsRequest
	if !bindJSON(c, &body) {
		return
	}
	result, err := h.Directory.ValidateDocuments(c.Request.Context(), c.Param("idOrSlug"), body.Documents, requestLang(c))
	if err != nil {
		respondError(c, "failed to validate documents", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
