package middleware

import (
	"net/http"
	"time"

	"church_membership/internal/model"
	"church_membership/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// AuthUserKey is the gin context key holding the authenticated *model.User
	AuthUserKey = "authUser"
	// SessionCookieName is the cookie carrying the signed session token
	SessionCookieName = "access_token"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
	})
}

// SessionAuthMiddleware authenticates requests via the session cookie. The
// token subject is re-resolved against the identity store on every request,
// so a deleted user is rejected even with a formally valid token.
func SessionAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}

		user, err := authService.Verify(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(AuthUserKey, user)
		c.Next()
	}
}

// AuthUser returns the authenticated user set by SessionAuthMiddleware
func AuthUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok
}
