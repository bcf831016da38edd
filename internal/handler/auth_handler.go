package handler

import (
	"errors"
	"log"
	"net/http"

	"church_membership/internal/middleware"
	"church_membership/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds

// AuthHandler handles the login-or-register flow and session endpoints
type AuthHandler struct {
	service    service.AuthService
	production bool
}

// NewAuthHandler creates a new AuthHandler. production toggles the Secure
// flag on the session cookie.
func NewAuthHandler(s service.AuthService, production bool) *AuthHandler {
	return &AuthHandler{service: s, production: production}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, sessionMaxAge, "/", "", h.production, true)
}

// Login resolves contact credentials to a user, creating one on first
// contact, and hands the session token back as an httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Name     *string `json:"name,omitempty"`
		Email    *string `json:"email,omitempty" binding:"omitempty,email"`
		Phone    *string `json:"phone,omitempty"`
		Password *string `json:"password,omitempty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactRequired), errors.Is(err, service.ErrNameRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPasswordRequired), errors.Is(err, service.ErrInvalidPassword):
			respondError(c, http.StatusUnauthorized, err.Error())
		default:
			log.Printf("Error during login: %v", err)
			respondError(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Me returns the authenticated user resolved from the session cookie
func (h *AuthHandler) Me(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.service.Verify(c.Request.Context(), token)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Refresh rotates the session cookie for a still-existing user
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.service.Verify(c.Request.Context(), token)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	newToken, err := h.service.Refresh(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserGone) {
			respondError(c, http.StatusUnauthorized, "Failed to refresh token")
			return
		}
		log.Printf("Error refreshing token: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	h.setSessionCookie(c, newToken)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the client-held session credential. Issued tokens stay
// valid until expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.production, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ValidateUser reports whether a user id still resolves to a live record
func (h *AuthHandler) ValidateUser(c *gin.Context) {
	user, err := h.service.Validate(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrUserGone) {
			respondError(c, http.StatusUnauthorized, "User not found")
			return
		}
		log.Printf("Error validating user: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to validate user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.Me)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/validate/:userId", h.ValidateUser)
	}
}
