package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/middleware"
	"github.com/grantdesk-api/services"
)

// AuthController handles account endpoints
type AuthController struct {
	authService  *services.AuthService
	cookieSecure bool
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers auth routes. requireAuth guards the routes that act on the current user.
func (a *AuthController) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", a.Register)
		authGroup.POST("/login", a.Login)
		authGroup.POST("/logout", a.Logout)
		authGroup.POST("/forgot-password", a.ForgotPassword)
		authGroup.PUT("/reset-password/:token", a.ResetPassword)

		authGroup.GET("/me", requireAuth, a.GetCurrentUser)
		authGroup.PUT("/details", requireAuth, a.UpdateDetails)
		authGroup.PUT("/password", requireAuth, a.UpdatePassword)
	}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.AuthResponse
// @Router /auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	authResponse, err := a.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	a.setTokenCookie(c, authResponse)
	respondData(c, http.StatusCreated, authResponse)
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	authResponse, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	// Also return token in response body for clients that prefer Bearer auth
	a.setTokenCookie(c, authResponse)
	respondData(c, http.StatusOK, authResponse)
}

// GetCurrentUser returns the currently authenticated user's profile
func (a *AuthController) GetCurrentUser(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	user, err := a.authService.Me(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

// UpdateDetails changes the current user's name or email
func (a *AuthController) UpdateDetails(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	user, err := a.authService.UpdateDetails(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

// UpdatePassword changes the current user's password and issues a new token
func (a *AuthController) UpdatePassword(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	authResponse, err := a.authService.UpdatePassword(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	a.setTokenCookie(c, authResponse)
	respondData(c, http.StatusOK, authResponse)
}

// ForgotPassword starts the password reset flow
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	response, err := a.authService.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, response)
}

// ResetPassword sets a new password with the token from the reset mail
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	authResponse, err := a.authService.ResetPassword(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	a.setTokenCookie(c, authResponse)
	respondData(c, http.StatusOK, authResponse)
}

// setTokenCookie stores the token as an HttpOnly cookie living as long as the token
func (a *AuthController) setTokenCookie(c *gin.Context, authResponse *dto.AuthResponse) {
	maxAge := int(time.Until(authResponse.ExpiresAt).Seconds())
	if maxAge <= 0 {
		return
	}
	c.SetCookie(
		middleware.TokenCookie, // name
		authResponse.Token,     // value
		maxAge,                 // max age
		"/",                    // path
		"",                     // domain
		a.cookieSecure,         // secure (HTTPS only)
		true,                   // httpOnly (not accessible via JS)
	)
}
