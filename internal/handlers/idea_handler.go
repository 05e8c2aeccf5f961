package handlers

import (
	"fmt"
	"net/http"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/middleware"
	"iblaze_backend/internal/services"
	"iblaze_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	*BaseHandler
	ideaService services.IdeaService
	gate        *middleware.Gate
}

func NewIdeaHandler(base *BaseHandler, ideaService services.IdeaService, gate *middleware.Gate) *IdeaHandler {
	return &IdeaHandler{
		BaseHandler: base,
		ideaService: ideaService,
		gate:        gate,
	}
}

func (h *IdeaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ideas := rg.Group("/ideas", h.gate.Authenticate())
	{
		ideas.GET("", h.gate.Require(auth.ResourceIdea, auth.ActionList), h.ListApproved)
		ideas.POST("", h.gate.Require(auth.ResourceIdea, auth.ActionCreate), h.Create)
		ideas.GET("/:id", h.gate.Require(auth.ResourceIdea, auth.ActionRead), h.Get)
		ideas.PUT("/:id", h.gate.Require(auth.ResourceIdea, auth.ActionUpdate), h.Update)
		ideas.DELETE("/:id", h.gate.Require(auth.ResourceIdea, auth.ActionDelete), h.Delete)
		ideas.POST("/:id/request-access", h.gate.Require(auth.ResourceAccessRequest, auth.ActionCreate), h.RequestAccess)
		ideas.PUT("/:id/access-request/:requestId", h.gate.Require(auth.ResourceAccessRequest, auth.ActionReview), h.DecideAccessRequest)
	}
}

func (h *IdeaHandler) ListApproved(c *gin.Context) {
	ideas, err := h.ideaService.ListApproved(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondList(c, ideas, len(ideas))
}

func (h *IdeaHandler) Create(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.CreateIdeaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	idea, err := h.ideaService.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusCreated, idea)
}

func (h *IdeaHandler) Get(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	idea, err := h.ideaService.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, idea)
}

func (h *IdeaHandler) Update(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateIdeaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	idea, err := h.ideaService.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, idea)
}

func (h *IdeaHandler) Delete(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	if err := h.ideaService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Idea deleted successfully", nil)
}

func (h *IdeaHandler) RequestAccess(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	req, err := h.ideaService.RequestAccess(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Access request submitted successfully", req)
}

func (h *IdeaHandler) DecideAccessRequest(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	idea, err := h.ideaService.DecideAccessRequest(c.Request.Context(), user, c.Param("id"), c.Param("requestId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, fmt.Sprintf("Access request %s successfully", req.Status), idea)
}
