package middleware

import (
	"github.com/gin-gonic/gin"

	"tasktracker/internal/authz"
	apperrors "tasktracker/internal/errors"
)

// RequireAdmin gates employee-management routes behind the ADMIN role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := GetActor(c)
		if !exists {
			apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
			c.Abort()
			return
		}

		if !authz.CanManageEmployees(actor) {
			apperrors.Respond(c, apperrors.Forbidden("Admin access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
