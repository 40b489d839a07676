package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 30*24*time.Hour, cfg.TokenExpiry)
	// Development fallback when no secret is configured.
	assert.Equal(t, "admin123", cfg.AdminSecret)
	assert.Equal(t, "course-videos", cfg.Storage.VideoBucket)
	assert.Equal(t, "ai-tool-images", cfg.Storage.ImageBucket)
}

func TestLoad_ProductionRequiresAdminSecret(t *testing.T) {
	t.Setenv("ACADEMY_SERVER_ENV", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProductionWithAdminSecret(t *testing.T) {
	t.Setenv("ACADEMY_SERVER_ENV", "production")
	t.Setenv("ADMIN_SECRET", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "super-secret", cfg.AdminSecret)
}

func TestLoad_TokenExpiryOverride(t *testing.T) {
	t.Setenv("ACADEMY_TOKEN_EXPIRY_HOURS", "168")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 168*time.Hour, cfg.TokenExpiry)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("ACADEMY_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com;https://c.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://a.example.com",
		"https://b.example.com",
		"https://c.example.com",
	}, cfg.AllowedOrigins)
}

func TestParseDatabaseURL(t *testing.T) {
	cfg := parseDatabaseURL("postgresql://academy:pw@db.internal:6432/academy_prod?sslmode=require&timezone=Asia/Seoul")

	assert.Equal(t, "academy", cfg.User)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, "6432", cfg.Port)
	assert.Equal(t, "academy_prod", cfg.Name)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.Equal(t, "Asia/Seoul", cfg.TimeZone)
}

func TestParseDatabaseURL_MinimalForm(t *testing.T) {
	cfg := parseDatabaseURL("postgres://academy@localhost/academy")

	assert.Equal(t, "academy", cfg.User)
	assert.Equal(t, "", cfg.Password)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "academy", cfg.Name)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "pw",
		Name:     "academy",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}.DSN()

	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=academy")
	assert.Contains(t, dsn, "sslmode=disable")
}
