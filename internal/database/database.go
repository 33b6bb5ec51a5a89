package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktracker/internal/config"
	"tasktracker/internal/logging"
	"tasktracker/internal/models"
)

var DB *gorm.DB

// Connect opens the database connection for the configured driver.
func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		return fmt.Errorf("unsupported database driver: %q", cfg.DBDriver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Logger.WithField("driver", cfg.DBDriver).Info("database connection established")
	return nil
}

// Migrate creates or updates the schema for all models.
func Migrate() error {
	if err := AutoMigrate(DB); err != nil {
		return err
	}
	logging.Logger.Info("database migrations completed")
	return nil
}

// AutoMigrate runs schema migration against the given connection.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Organization{},
		&models.OrganizationClient{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
