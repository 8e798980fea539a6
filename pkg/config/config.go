package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	API      APIConfig
	Wishlist WishlistConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"WISHSYNC_APP_ENV" default:"dev"`
	Port     string `envconfig:"WISHSYNC_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"WISHSYNC_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path            string        `envconfig:"WISHSYNC_DB_PATH" default:"wishsync.db"`
	MaxOpenConns    int           `envconfig:"WISHSYNC_DB_MAX_OPEN_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"WISHSYNC_DB_CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"WISHSYNC_DB_AUTO_MIGRATE" default:"true"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WISHSYNC_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WISHSYNC_JWT_ISSUER" default:"wishsync"`
	ExpirationMinutes int    `envconfig:"WISHSYNC_JWT_EXPIRATION_MINUTES" default:"60"`
}

// APIConfig configures the SDK side: where the wishlist resource lives and how
// long a single request may take.
type APIConfig struct {
	BaseURL string        `envconfig:"WISHSYNC_API_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"WISHSYNC_API_TIMEOUT" default:"10s"`
}

type WishlistConfig struct {
	CheckChunkSize int `envconfig:"WISHSYNC_WISHLIST_CHECK_CHUNK_SIZE" default:"5"`
}
