package handlers

import (
	"context"
	"net/http"
	"time"

	"iblaze_backend/internal/logger"
	"iblaze_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	*BaseHandler
	ping func(ctx context.Context) error
}

func NewHealthHandler(base *BaseHandler, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{BaseHandler: base, ping: ping}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			logger.CtxWithError(ctx, "Health check failed", err)
			apperrors.HandleError(c, apperrors.ErrStorageUnavailable.WithError(err))
			return
		}
	}
	h.Respond(c, http.StatusOK, gin.H{"status": "ok", "storage": "up"})
}
