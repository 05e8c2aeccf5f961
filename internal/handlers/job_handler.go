package handlers

import (
	"net/http"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/middleware"
	"iblaze_backend/internal/services"
	"iblaze_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
	gate       *middleware.Gate
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, gate *middleware.Gate) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
		gate:        gate,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs", h.gate.Authenticate())
	{
		jobs.GET("", h.gate.Require(auth.ResourceJob, auth.ActionList), h.ListApproved)
		jobs.POST("", h.gate.Require(auth.ResourceJob, auth.ActionCreate), h.Create)
		jobs.GET("/:id", h.gate.Require(auth.ResourceJob, auth.ActionRead), h.Get)
		jobs.PUT("/:id", h.gate.Require(auth.ResourceJob, auth.ActionUpdate), h.Update)
		jobs.DELETE("/:id", h.gate.Require(auth.ResourceJob, auth.ActionDelete), h.Delete)
		jobs.POST("/:id/apply", h.gate.Require(auth.ResourceJob, auth.ActionApply), h.Apply)
		jobs.GET("/:id/applications", h.gate.Require(auth.ResourceApplication, auth.ActionList), h.ListApplications)
		jobs.PUT("/:id/applications/:applicationId", h.gate.Require(auth.ResourceApplication, auth.ActionReview), h.ReviewApplication)
	}
}

func (h *JobHandler) ListApproved(c *gin.Context) {
	jobs, err := h.jobService.ListApproved(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondList(c, jobs, len(jobs))
}

func (h *JobHandler) Create(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusCreated, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Job deleted successfully", nil)
}

func (h *JobHandler) Apply(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	app, err := h.jobService.Apply(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusCreated, app)
}

func (h *JobHandler) ListApplications(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	apps, err := h.jobService.ListApplications(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondList(c, apps, len(apps))
}

func (h *JobHandler) ReviewApplication(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	app, err := h.jobService.ReviewApplication(c.Request.Context(), user, c.Param("id"), c.Param("applicationId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, app)
}
