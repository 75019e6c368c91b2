package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is built once in main and passed
// down by value; nothing mutates it after Load returns.
type Config struct {
	Addr      string
	DBDriver  string
	DBDSN     string
	JWTSecret []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	PageSize    int
	MaxPageSize int

	AdminUsername string
	AdminPassword string
}

const (
	defaultAddr        = ":8080"
	defaultDriver      = "mysql"
	defaultDSN         = "root:@tcp(localhost:3306)/todos?parseTime=true"
	defaultAccessTTL   = 15 * time.Minute
	defaultRefreshTTL  = 72 * time.Hour
	defaultPageSize    = 3
	defaultMaxPageSize = 100
	defaultAdminUser   = "admin"
	defaultAdminPass   = "admin123"
)

// Load reads a .env file if one exists, then the environment. Missing keys
// fall back to defaults; JWT_SECRET is the only required setting.
func Load() (Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}

	cfg := Config{
		Addr:        envOr("SERVER_ADDR", defaultAddr),
		DBDriver:    envOr("DB_DRIVER", defaultDriver),
		DBDSN:       envOr("DB_DSN", defaultDSN),
		JWTSecret:   []byte(secret),
		AccessTTL:   defaultAccessTTL,
		RefreshTTL:  defaultRefreshTTL,
		PageSize:    defaultPageSize,
		MaxPageSize: defaultMaxPageSize,

		AdminUsername: envOr("ADMIN_USERNAME", defaultAdminUser),
		AdminPassword: envOr("ADMIN_PASSWORD", defaultAdminPass),
	}

	var err error
	if cfg.AccessTTL, err = envDuration("ACCESS_TOKEN_TTL", cfg.AccessTTL); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTTL, err = envDuration("REFRESH_TOKEN_TTL", cfg.RefreshTTL); err != nil {
		return Config{}, err
	}
	if cfg.PageSize, err = envInt("PAGE_SIZE", cfg.PageSize); err != nil {
		return Config{}, err
	}
	if cfg.MaxPageSize, err = envInt("MAX_PAGE_SIZE", cfg.MaxPageSize); err != nil {
		return Config{}, err
	}
	if cfg.PageSize < 1 || cfg.MaxPageSize < cfg.PageSize {
		return Config{}, fmt.Errorf("invalid page size settings: default %d, max %d", cfg.PageSize, cfg.MaxPageSize)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
