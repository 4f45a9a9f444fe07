package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/middleware"
)

// Logout handles user logout
func (a *AuthController) Logout(c *gin.Context) {
	// Clear the cookie by setting max-age to -1 (expired)
	c.SetCookie(
		middleware.TokenCookie, // name
		"",                     // value (empty)
		-1,                     // max age (expired)
		"/",                    // path
		"",                     // domain
		a.cookieSecure,         // secure (HTTPS only)
		true,                   // httpOnly (not accessible via JS)
	)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}
