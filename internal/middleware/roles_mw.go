package middleware

import (
	"itemhub/internal/apierr"
	"itemhub/internal/model"

	"github.com/gin-gonic/gin"
)

// RequireRoles creates a middleware that only lets identities with one of the
// allowed roles through. It must run after the JWT middleware; a missing
// identity is treated as unauthenticated.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.Error(apierr.AuthRequired())
			c.Abort()
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.Error(apierr.AuthRequired())
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		c.Error(apierr.InsufficientPermissions())
		c.Abort()
	}
}

// AdminMiddleware restricts a route to admins
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(model.RoleAdmin)
}
