package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultTestEmail    = "test@example.com"
	DefaultTestPassword = "Test123!@#"

	defaultAppPort  = "8080"
	defaultLogLevel = "info"
)

// ErrMissingConfiguration is returned when a required setting is absent.
// The process must not start when it is returned.
var ErrMissingConfiguration = errors.New("missing required configuration")

// Config is loaded once at startup and treated as immutable afterwards.
type Config struct {
	AppPort  string
	LogLevel string

	// Cognito user pool app client
	CognitoClientID     string
	CognitoClientSecret string
	CognitoRegion       string

	// Manual run defaults
	TestEmail    string
	TestPassword string
}

// Load reads an optional .env file from the working directory and then
// the environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		AppPort:  getEnv("APP_PORT", defaultAppPort),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),

		CognitoClientID:     os.Getenv("COGNITO_CLIENT_ID"),
		CognitoClientSecret: os.Getenv("COGNITO_CLIENT_SECRET"),
		CognitoRegion:       os.Getenv("COGNITO_REGION"),

		TestEmail:    getEnv("TEST_EMAIL", DefaultTestEmail),
		TestPassword: getEnv("TEST_PASSWORD", DefaultTestPassword),
	}

	var missing []string
	if cfg.CognitoClientID == "" {
		missing = append(missing, "COGNITO_CLIENT_ID")
	}
	if cfg.CognitoClientSecret == "" {
		missing = append(missing, "COGNITO_CLIENT_SECRET")
	}
	if cfg.CognitoRegion == "" {
		missing = append(missing, "COGNITO_REGION")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: read %s: %w", path, err)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
