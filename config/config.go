package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Server
	Port    string
	Debug   bool
	SiteURL string

	// Gemini Model
	GeminiModel string

	// Cloud Storage
	CVBucketName string

	// Email (Resend)
	ResendAPIKey string
	FromEmail    string

	// Authentication
	JWTSecret      string
	JWTExpiryHours int
	AdminToken     string

	// Intake limits
	MaxApplicationsPerHour int
	CVRetentionDays        int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", "us-central1"),

		// Server
		Port:    getEnv("PORT", "8080"),
		Debug:   getEnvBool("DEBUG", false),
		SiteURL: getEnv("SITE_URL", "http://localhost:8080"),

		// Gemini Model
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		// Cloud Storage
		CVBucketName: getEnv("CV_BUCKET_NAME", ""),

		// Email
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "Portal Empleos Chile <onboarding@resend.dev>"),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),

		// Intake limits
		MaxApplicationsPerHour: getEnvInt("MAX_APPLICATIONS_PER_HOUR", 3),
		CVRetentionDays:        getEnvInt("CV_RETENTION_DAYS", 90),
	}
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Firestore and Vertex AI"}
	}
	if c.CVBucketName == "" {
		return &ConfigError{Field: "CV_BUCKET_NAME", Message: "CV_BUCKET_NAME is required for CV storage"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
