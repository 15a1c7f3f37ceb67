package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage
	DataDir string

	// Entity extraction
	GeminiAPIKey string
	GeminiModel  string

	// Viewer configuration
	APIBaseURL string

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS bool

	// Request limits
	MaxBodyBytes int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":5050"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		DataDir:       getEnv("DATA_DIR", "."),

		// The original deployment read the key from AI_KEY; keep it as
		// a fallback so existing environments still work.
		GeminiAPIKey: getEnv("GEMINI_API_KEY", getEnv("AI_KEY", "")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		APIBaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:5050"),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		EnableCORS:   getEnvBool("ENABLE_CORS", true),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR cannot be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
