// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"socialfeed/app/logging"
	"socialfeed/app/models"
)

// ErrMissingSecret is returned when JWT_SECRET is not set.
var ErrMissingSecret = errors.New("JWT_SECRET is required")

// Config holds every setting the server reads at start.
type Config struct {
	Port                  string
	DataDir               string
	MediaDir              string
	MediaBaseURL          string
	JWTSecret             []byte
	TokenTTL              time.Duration
	CorsAllowedOrigins    []string
	DefaultProfilePicture string
	MaxUploadBytes        int64
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	Log                   logging.LoggerConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var errs []error

	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		DataDir:               getEnv("DATA_DIR", "data/badger"),
		MediaDir:              getEnv("MEDIA_DIR", "data/media"),
		MediaBaseURL:          strings.TrimRight(getEnv("MEDIA_BASE_URL", "http://localhost:8080/media"), "/"),
		JWTSecret:             []byte(getEnv("JWT_SECRET", "")),
		CorsAllowedOrigins:    splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		DefaultProfilePicture: getEnv("DEFAULT_PROFILE_PICTURE", models.DefaultProfilePicture),
		Log: logging.LoggerConfig{
			AppName: "socialfeed",
			Output:  getEnv("LOG_OUTPUT", "stderr"),
			Level:   getEnv("LOG_LEVEL", "info"),
		},
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.ReadTimeout, err = getDuration("READ_TIMEOUT", 15*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.WriteTimeout, err = getDuration("WRITE_TIMEOUT", 15*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxUploadBytes, err = getInt("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		errs = append(errs, err)
	}
	if cfg.Log.JSON, err = getBool("LOG_JSON", false); err != nil {
		errs = append(errs, err)
	}

	return cfg, errors.Join(errs...)
}

// Validate checks the settings the server cannot run without.
func (c Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return ErrMissingSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int64) (int64, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
