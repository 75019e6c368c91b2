package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultAddr, cfg.Addr)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, defaultPageSize, cfg.PageSize)
	assert.Equal(t, defaultMaxPageSize, cfg.MaxPageSize)
	assert.Equal(t, defaultAccessTTL, cfg.AccessTTL)
	assert.Equal(t, defaultRefreshTTL, cfg.RefreshTTL)
	assert.Equal(t, defaultAdminUser, cfg.AdminUsername)
	assert.Equal(t, defaultAdminPass, cfg.AdminPassword)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_ADDR", ":9000")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("MAX_PAGE_SIZE", "50")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 50, cfg.MaxPageSize)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, "root", cfg.AdminUsername)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Setenv("PAGE_SIZE", "oops")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PAGE_SIZE", "200")
	t.Setenv("MAX_PAGE_SIZE", "100")
	_, err = Load()
	assert.Error(t, err, "max below default is inconsistent")
}
