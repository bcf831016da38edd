package middleware

import (
	"net/http"
	"time"

	"church_membership/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware that allows only the given roles.
// It must run after SessionAuthMiddleware.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := AuthUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{
				StatusCode: http.StatusForbidden,
				Message:    "Authenticated user not found, ensure session middleware runs first",
				Timestamp:  time.Now().UTC().Format(time.RFC3339),
				Path:       c.Request.URL.Path,
			})
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{
			StatusCode: http.StatusForbidden,
			Message:    "You do not have permission to access this resource",
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Path:       c.Request.URL.Path,
		})
	}
}

// AdminMiddleware allows only admins
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}
