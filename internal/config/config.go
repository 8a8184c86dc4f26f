package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cesargomez89/trackvault/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port          string
	DBPath        string
	UploadDir     string
	PublicBaseURL string
	MaxUploadMB   int
	LogLevel      string
	LogFormat     string
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is honored if present.
func Load() *Config {
	_ = godotenv.Load()

	maxUpload := constants.DefaultMaxUploadMB
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxUpload = n
		}
	}

	return &Config{
		Port:          getEnv("PORT", constants.DefaultPort),
		DBPath:        getEnv("DB_PATH", constants.DefaultDBPath),
		UploadDir:     getEnv("UPLOAD_DIR", constants.DefaultUploadDir),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		MaxUploadMB:   maxUpload,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	// Validate DBPath
	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	// Validate UploadDir
	if c.UploadDir == "" {
		errors = append(errors, "UPLOAD_DIR cannot be empty")
	}

	// Validate PublicBaseURL (optional, but must be absolute when set)
	if c.PublicBaseURL != "" {
		u, err := url.Parse(c.PublicBaseURL)
		if err != nil || !u.IsAbs() {
			errors = append(errors, fmt.Sprintf("PUBLIC_BASE_URL must be an absolute URL, got: %s", c.PublicBaseURL))
		}
	}

	// Validate MaxUploadMB
	if c.MaxUploadMB < 1 {
		errors = append(errors, fmt.Sprintf("MAX_UPLOAD_MB must be at least 1, got: %d", c.MaxUploadMB))
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
