package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/models"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey = "userId"
	RoleKey   = "role"

	// TokenCookie carries the access token for browser clients
	TokenCookie = "access_token"
)

// TokenVerifier resolves a bearer token into the calling actor
type TokenVerifier interface {
	VerifyToken(token string) (access.Actor, error)
}

// AuthMiddleware verifies the access token from the Authorization header or
// the token cookie and stores the caller on the context
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, apperr.KindUnauthorized, "Authentication required")
			return
		}

		actor, err := verifier.VerifyToken(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, apperr.KindUnauthorized, apperr.MessageOf(err))
			return
		}

		c.Set(UserIDKey, actor.UserID)
		c.Set(RoleKey, actor.Role)
		c.Next()
	}
}

// CurrentActor returns the caller stored by AuthMiddleware
func CurrentActor(c *gin.Context) (access.Actor, bool) {
	userID := c.GetString(UserIDKey)
	if userID == "" {
		return access.Actor{}, false
	}
	role, _ := c.Get(RoleKey)
	r, _ := role.(models.Role)
	return access.Actor{UserID: userID, Role: r}, true
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, kind apperr.Kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"code":    kind,
		"message": message,
	})
}
