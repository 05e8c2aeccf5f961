package middleware

import (
	"strings"

	"iblaze_backend/internal/auth"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/models"
	"iblaze_backend/internal/services"
	"iblaze_backend/pkg/apperrors"
	"iblaze_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// Gate resolves the caller from the bearer token and evaluates route permissions.
type Gate struct {
	authService services.AuthService
}

func NewGate(authService services.AuthService) *Gate {
	return &Gate{authService: authService}
}

// Authenticate loads the current user; the account state is re-read on every request.
func (g *Gate) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}

		user, err := g.authService.Authenticate(c.Request.Context(), strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(contextkeys.UserKey, user)
		c.Set(contextkeys.UserIDKey, user.ID)
		c.Set(contextkeys.RoleKey, user.Role)
		c.Request = c.Request.WithContext(logger.WithUser(c.Request.Context(), user.ID, string(user.Role)))
		c.Next()
	}
}

// Require must run after Authenticate.
func (g *Gate) Require(resource auth.Resource, action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Authorize(CurrentUser(c), resource, action); err != nil {
			logger.CtxWarn(c.Request.Context(), "Access denied",
				"resource", resource,
				"action", action,
				"allowed_roles", auth.RolesFor(resource, action),
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(contextkeys.UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}
