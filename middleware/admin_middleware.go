package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/models"
)

// RoleSource reports a user's current platform role
type RoleSource interface {
	CurrentRole(ctx context.Context, userID string) (models.Role, error)
}

// AdminMiddleware creates a middleware that ensures the user has the platform admin role.
// The role is read from storage rather than the token, so a demotion applies
// on the next request. This middleware should be used after AuthMiddleware
func AdminMiddleware(roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := CurrentActor(c)
		if !exists {
			abort(c, http.StatusUnauthorized, apperr.KindUnauthorized, "Authentication required")
			return
		}

		role, err := roles.CurrentRole(c.Request.Context(), actor.UserID)
		switch {
		case apperr.KindOf(err) == apperr.KindNotFound:
			abort(c, http.StatusUnauthorized, apperr.KindUnauthorized, "Authentication required")
			return
		case err != nil:
			klog.ErrorS(err, "Failed to load user role", "user", actor.UserID)
			abort(c, http.StatusInternalServerError, apperr.KindServiceError, "Failed to load user role")
			return
		}

		if role != models.RoleAdmin {
			abort(c, http.StatusForbidden, apperr.KindForbidden, "Admin privileges required")
			return
		}

		c.Set(RoleKey, role)
		c.Next()
	}
}
