package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	GinMode       string
	LogLevel      string
	LogFormat     string
	Port          string
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	viper.AutomaticEnv()

	viper.SetDefault("DB_DRIVER", "mysql")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_USER", "taskuser")
	viper.SetDefault("DB_PASSWORD", "taskpassword")
	viper.SetDefault("DB_NAME", "task_tracker")
	viper.SetDefault("JWT_SECRET", "default-secret-key-change-me")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("PORT", "8080")

	return &Config{
		DBDriver:      viper.GetString("DB_DRIVER"),
		DBHost:        viper.GetString("DB_HOST"),
		DBPort:        viper.GetString("DB_PORT"),
		DBUser:        viper.GetString("DB_USER"),
		DBPassword:    viper.GetString("DB_PASSWORD"),
		DBName:        viper.GetString("DB_NAME"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		AdminEmail:    viper.GetString("ADMIN_EMAIL"),
		AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		GinMode:       viper.GetString("GIN_MODE"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		LogFormat:     viper.GetString("LOG_FORMAT"),
		Port:          viper.GetString("PORT"),
	}
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}
