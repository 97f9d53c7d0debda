// Package config provides environment configuration for the chat platform.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Completion backends
	OpenAIAPIKey string
	OpenAIModel  string
	GroqAPIKey   string
	GroqBaseURL  string
	GroqModel    string

	// Web search
	SerperAPIKey      string
	HTTPClientTimeout time.Duration

	// Persistence
	DBPath string

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Completion backends
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:  getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:    getEnv("GROQ_MODEL", "mixtral-8x7b-32768"),

		// Web search
		SerperAPIKey:      getEnv("SERPER_API_KEY", ""),
		HTTPClientTimeout: getDurationEnv("HTTP_CLIENT_TIMEOUT", 10*time.Second),

		// Persistence
		DBPath: getEnv("DB_PATH", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
