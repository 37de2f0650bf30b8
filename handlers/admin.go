package handlers

import (
	"net/http"

	"citizenhub/middleware"
	"citizenhub/models"
	"citizenhub/services/directory"
	"citizenhub/services/user"

	"github.com/gin-gonic/gin"
)

// ConfirmDeleteHeader carries the token required for permanent deletion.
const ConfirmDeleteHeader = "X-Confirm-Delete"

// AdminHandler serves /api/admin. Every route sits behind RequireAdmin.
type AdminHandler struct {
	Directory directory.DirectoryService
	Users     user.UserService
}

// ListServices handles GET /api/admin/services; drafts and every status are visible.
func (h *AdminHandler) ListServices(c *gin.Context) {
	list, err := h.Directory.ListServices(c.Request.Context(), directory.ListQuery{
		Category:     c.Query("category"),
		Status:       c.Query("status"),
		Jurisdiction: c.Query("jurisdiction"),
		State:        c.Query("state"),
		Query:        c.Query("q"),
		Lang:         requestLang(c),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
		Admin:        true,
	})
	if err != nil {
		respondError(c, "failed to list services", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetService handles GET /api/admin/services/:idOrSlug and returns every language.
func (h *AdminHandler) GetService(c *gin.Context) {
	svc, err := h.Directory.GetService(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		respondError(c, "failed to load service", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateService handles POST /api/admin/services.
func (h *AdminHandler) CreateService(c *gin.Context) {
	var draft models.ServiceDraft
	if !bindJSON(c, &draft) {
		return
	}
	svc, err := h.Directory.CreateService(c.Request.Context(), draft, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, "failed to create service", err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateService handles PATCH /api/admin/services/:idOrSlug.
func (h *AdminHandler) UpdateService(c *gin.Context) {
	var update models.ServiceUpdate
	if !bindJSON(c, &update) {
		return
	}
	svc, err := h.Directory.UpdateService(c.Request.Context(), c.Param("idOrSlug"), update, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, "failed to update service", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

type statusRequest struct {
	Status models.ServiceStatus `json:"status" binding:"required"`
}

// ChangeStatus handles PUT /api/admin/services/:idOrSlug/status.
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	var body statusRequest
	if !bindJSON(c, &body) {
		return
	}
	svc, err := h.Directory.ChangeStatus(c.Request.Context(), c.Param("idOrSlug"), body.Status, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, "failed to change status", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeprecateService handles DELETE /api/admin/services/:idOrSlug.
func (h *AdminHandler) DeprecateService(c *gin.Context) {
	svc, err := h.Directory.DeprecateService(c.Request.Context(), c.Param("idOrSlug"), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, "failed to deprecate service", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// PermanentlyDelete handles DELETE /api/admin/services/:idOrSlug/permanent.
func (h *AdminHandler) PermanentlyDelete(c *gin.Context) {
	err := h.Directory.PermanentlyDeleteService(c.Request.Context(), c.Param("idOrSlug"), c.GetHeader(ConfirmDeleteHeader))
	if err != nil {
		respondError(c, "failed to delete service", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service permanently deleted"})
}

type batchStatusRequest struct {
	IDs    []string             `json:"ids" binding:"required"`
	Status models.ServiceStatus `json:"status" binding:"required"`
}

// BatchStatus handles POST /api/admin/services/batch-status.
func (h *AdminHandler) BatchStatus(c *gin.Context) {
	var body batchStatusRequest
	if !bindJSON(c, &body) {
		return
	}
	n, err := h.Directory.BatchChangeStatus(c.Request.Context(), body.IDs, body.Status, c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, "failed to change statuses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n, "status": body.Status})
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, page, err := h.Users.GetAllUsers(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, "failed to list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "pagination": page})
}
