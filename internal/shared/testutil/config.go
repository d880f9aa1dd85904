package testutil

import (
	"testing"
	"time"

	"github.com/sample1/member-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const (
	TestAdminUsername = "admin"
	TestAdminPassword = "admin-password"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "member-api-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			DSN:             ":memory:",
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
			SlowThreshold:   200 * time.Millisecond,
			IsAutoMigrate:   true,
		},
		Numbering: config.NumberingConfig{
			InitialValue: 1,
		},
		Admin: config.AdminConfig{
			Username: TestAdminUsername,
			// set by WithAdminPassword; bcrypt is slow so it is opt-in
			PasswordHash: "unset",
		},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        time.Hour,
			RefreshExpiry: 24 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			GracefulTimeout: 30 * time.Second,
		},
		Metrics: config.MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// WithAdminPassword stores a bcrypt hash of TestAdminPassword in cfg
func WithAdminPassword(t *testing.T, cfg *config.Config) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash admin password: %v", err)
	}
	cfg.Admin.PasswordHash = string(hash)
	return cfg
}
