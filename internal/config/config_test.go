package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "jwt")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 30, cfg.LogRetentionDays)
	assert.Equal(t, 4*1024*1024, cfg.BodyLimit)
	assert.Equal(t, "jwt", cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/subs.db")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("LOG_RETENTION_DAYS", "7")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/subs.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 7, cfg.LogRetentionDays)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "lots")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "6543",
		DBUser:     "billing",
		DBPassword: "pw",
		DBName:     "subs",
		DBSSLMode:  "require",
	}
	assert.Equal(t,
		"host=db user=billing password=pw dbname=subs port=6543 sslmode=require TimeZone=UTC",
		cfg.DSN(),
	)
}
