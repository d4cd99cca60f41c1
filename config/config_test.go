package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "dev", cfg.Server.AppEnv)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "5432", cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "menu-images", cfg.Minio.Bucket)
	assert.Empty(t, cfg.Translate.Endpoint)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "42")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "30")

	cfg := LoadEnv()

	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 42, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Minio.UseSSL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
}

func TestLoadEnvIgnoresGarbageNumbers(t *testing.T) {
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "many")
	t.Setenv("MINIO_USE_SSL", "yes please")

	cfg := LoadEnv()

	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
	assert.False(t, cfg.Minio.UseSSL)
}
