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
	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.Equal(t, "data/mirifer.db", cfg.Database.Path)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Empty(t, cfg.Admin.Password)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MIRIFER_SERVER_ADDR", ":9090")
	t.Setenv("MIRIFER_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("MIRIFER_ADMIN_PASSWORD", "hunter2")
	t.Setenv("MIRIFER_RATE_LIMIT_MAX", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
	assert.Equal(t, 5, cfg.RateLimit.Max)
}
