package handlers

import (
	"net/http"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/middleware"
	"iblaze_backend/internal/services"
	"iblaze_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation console. Every route is admin only.
type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
	gate         *middleware.Gate
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, gate *middleware.Gate) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
		gate:         gate,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", h.gate.Authenticate())
	{
		admin.GET("/users", h.gate.Require(auth.ResourceUser, auth.ActionList), h.ListUsers)
		admin.PUT("/users/:userId", h.gate.Require(auth.ResourceUser, auth.ActionUpdate), h.UpdateUser)
		admin.GET("/ideas/pending", h.gate.Require(auth.ResourceIdea, auth.ActionModerate), h.PendingIdeas)
		admin.PUT("/ideas/:ideaId", h.gate.Require(auth.ResourceIdea, auth.ActionModerate), h.ModerateIdea)
		admin.GET("/jobs/pending", h.gate.Require(auth.ResourceJob, auth.ActionModerate), h.PendingJobs)
		admin.PUT("/jobs/:jobId", h.gate.Require(auth.ResourceJob, auth.ActionModerate), h.ModerateJob)
		admin.GET("/analytics", h.gate.Require(auth.ResourceAnalytics, auth.ActionRead), h.Analytics)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter dto.UserFilterQuery
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}

	users, err := h.adminService.ListUsers(c.Request.Context(), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondList(c, users, len(users))
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, user)
}

func (h *AdminHandler) PendingIdeas(c *gin.Context) {
	ideas, err := h.adminService.PendingIdeas(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondList(c, ideas, len(ideas))
}

func (h *AdminHandler) ModerateIdea(c *gin.Context) {
	var req dto.StatusRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	idea, err := h.adminService.ModerateIdea(c.Request.Context(), c.Param("ideaId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, idea)
}

func (h *AdminHandler) PendingJobs(c *gin.Context) {
	jobs, err := h.adminService.PendingJobs(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondList(c, jobs, len(jobs))
}

func (h *AdminHandler) ModerateJob(c *gin.Context) {
	var req dto.StatusRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	job, err := h.adminService.ModerateJob(c.Request.Context(), c.Param("jobId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, job)
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	stats, err := h.adminService.Analytics(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, stats)
}
