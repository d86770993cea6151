package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_AuthConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("JWT_TTL", "2h")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("JWT_TTL")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify auth config
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "greencycle", cfg.Auth.Issuer)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("DB_NAME")
	os.Unsetenv("GEOLOCATION_COUNTRY_CODES")
	os.Unsetenv("VERIFY_ANALYSIS_DELAY")
	os.Unsetenv("ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("LOG_PRETTY")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.Equal(t, "greencycle", cfg.Database.Database)
	assert.Equal(t, "in,us,gb,ca,au", cfg.Geolocation.CountryCodes)
	assert.Equal(t, 2500*time.Millisecond, cfg.Verification.AnalysisDelay)
	assert.Equal(t, 2*time.Second, cfg.Verification.CollectionDelay)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "app",
		Password: "pw",
		Database: "greencycle",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=greencycle sslmode=require", cfg.DatabaseDSN())
}
