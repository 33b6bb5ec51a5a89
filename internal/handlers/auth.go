package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/middleware"
	"tasktracker/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.InvalidInput("Email & password required"))
		return
	}

	user, tok, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tok,
		"user":  dto.ToUserDTO(*user),
	})
}

// Me returns the resolved actor for the current request.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apperrors.Respond(c, apperrors.Unauthenticated("Missing token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToEmployeeDTO(*actor)})
}
