package database

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/internal/config"
	"tasktracker/internal/logging"
	"tasktracker/internal/models"
)

// EnsureAdmin seeds the bootstrap ADMIN account from configuration. It is a
// no-op when the credentials are unset or the account already exists.
func EnsureAdmin(cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logging.Logger.Info("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var existing models.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		logging.Logger.WithField("email", email).Info("admin exists, no changes made")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	firstName := "Admin"
	lastName := "User"
	admin := &models.User{
		Role:         models.RoleAdmin,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    &firstName,
		LastName:     &lastName,
	}

	if err := DB.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logging.Logger.WithField("email", email).Info("admin account created")
	return nil
}
