package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16

	// StoreBackend selects the document store: "firebase" or "memory".
	// The memory backend is for local development and tests only; its
	// contents vanish on restart.
	StoreBackend string

	Firebase FirebaseConfig

	// FrontendURL is the storefront origin allowed by CORS.
	FrontendURL string

	// SessionCookieSecure marks the session cookie Secure. Enable
	// everywhere the API is served over HTTPS.
	SessionCookieSecure bool
}

// FirebaseConfig holds the Firebase project settings. CredentialsFile may be
// empty when running somewhere application default credentials exist.
type FirebaseConfig struct {
	DatabaseURL     string
	CredentialsFile string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		// Walk up directories to find .env (max 2 parent directories)
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:          getEnv("ENV", "dev"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnvInt("PORT", 3000),
		StoreBackend: getEnv("STORE_BACKEND", "firebase"),
		Firebase: FirebaseConfig{
			DatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:5173"),
		SessionCookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.StoreBackend != "firebase" && cfg.StoreBackend != "memory" {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be firebase or memory", cfg.StoreBackend)
	}

	if cfg.StoreBackend == "firebase" && cfg.Firebase.DatabaseURL == "" {
		return nil, fmt.Errorf("FIREBASE_DATABASE_URL required when using the firebase store backend")
	}

	if cfg.Env == "prod" && cfg.StoreBackend == "memory" {
		return nil, fmt.Errorf("memory store backend is not allowed in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
