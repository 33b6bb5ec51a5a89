package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/constants"
	"tasktracker/internal/database"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/token"
)

// RequireAuth resolves the bearer token to an actor and stores it in the
// request context. Requests without a valid token are rejected.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
			c.Abort()
			return
		}

		userID, err := token.Parse(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperrors.Respond(c, apperrors.Unauthenticated("Invalid/expired token"))
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apperrors.Respond(c, apperrors.Unauthenticated("Invalid token user"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, &user)
		c.Next()
	}
}

// GetActor retrieves the authenticated user from context.
func GetActor(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	actor, ok := v.(*models.User)
	return actor, ok
}
