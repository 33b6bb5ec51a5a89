package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/token"
)

var (
	ErrInvalidCredentials = apperrors.Unauthenticated("Invalid credentials")
	ErrUserNotFound       = apperrors.NotFound("User not found")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user with a
// freshly issued bearer token.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	if input.Email == "" || input.Password == "" {
		return nil, "", apperrors.InvalidInput("Email & password required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", apperrors.Internal("failed to find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := token.Issue(s.jwtSecret, user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("failed to issue token", err)
	}

	return user, tok, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Internal("failed to find user", err)
	}

	return user, nil
}
