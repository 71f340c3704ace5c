package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("backoffice-service")
	require.NoError(t, err)

	assert.Equal(t, "backoffice-service", cfg.ServiceName)
	assert.Equal(t, "supermarket", cfg.DB.DBName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, 168, cfg.JWT.RefreshExpirationHours)
	assert.Equal(t, 10, cfg.OTP.ExpiryMinutes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("OTP_EXPIRY_MINUTES", "5")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")

	cfg, err := Load("backoffice-service")
	require.NoError(t, err)

	assert.Equal(t, "testdb", cfg.DB.DBName)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.JWT.ExpirationHours)
	assert.Equal(t, 5, cfg.OTP.ExpiryMinutes)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{
		Host: "db", Port: "5433", User: "app", Password: "pw",
		DBName: "supermarket", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5433 user=app password=pw dbname=supermarket sslmode=disable",
		c.GetDSN())
}

func TestGetEnvAsIntBadValue(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")
	cfg, err := Load("backoffice-service")
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
}
