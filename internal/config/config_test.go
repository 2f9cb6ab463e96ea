package config_test

import (
	"testing"
	"time"

	"go-hr-admin/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_MAX_RETRIES", "2")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_ADDR", "")

	cfg := config.Load()

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Database.MaxRetries)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := config.Load()

	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is required")
}
