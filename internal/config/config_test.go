package config_test

import (
	"testing"
	"time"

	"github.com/dom/postboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "DATABASE_URL", "JWT_SECRET", "JWT_REFRESH_SECRET",
		"ACCESS_TOKEN_TTL_MINUTES", "REFRESH_TOKEN_TTL_HOURS", "BCRYPT_COST",
	} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "your-secret-key", cfg.AccessTokenSecret)
	assert.Equal(t, "your-refresh-secret-key", cfg.RefreshTokenSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.ElementsMatch(t, []string{"DATABASE_URL", "JWT_SECRET", "JWT_REFRESH_SECRET"}, cfg.UsingInsecureDefaults())
	assert.Empty(t, cfg.NonStandardTokenLifetimes())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://app@db/app")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_TTL_HOURS", "48")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "postgres://app@db/app", cfg.DatabaseURL)
	assert.Equal(t, "access", cfg.AccessTokenSecret)
	assert.Equal(t, "refresh", cfg.RefreshTokenSecret)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.UsingInsecureDefaults())
	assert.Equal(t, []string{"ACCESS_TOKEN_TTL_MINUTES", "REFRESH_TOKEN_TTL_HOURS"}, cfg.NonStandardTokenLifetimes())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_InvalidIntegerFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "soon")
	t.Setenv("BCRYPT_COST", "-3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestNonStandardTokenLifetimes(t *testing.T) {
	cfg := &config.Config{
		AccessTokenTTL:  config.StandardAccessTokenTTL,
		RefreshTokenTTL: 24 * time.Hour,
	}
	assert.Equal(t, []string{"REFRESH_TOKEN_TTL_HOURS"}, cfg.NonStandardTokenLifetimes())

	cfg.RefreshTokenTTL = config.StandardRefreshTokenTTL
	assert.Empty(t, cfg.NonStandardTokenLifetimes())
}
