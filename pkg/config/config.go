package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	Pages      PagesConfig
	Storefront StorefrontConfig
	RateLimit  RateLimitConfig
	Features   FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AURANA_APP_ENV" required:"true"`
	Port         string `envconfig:"AURANA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AURANA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AURANA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"AURANA_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"AURANA_DB_DSN" default:"customers.db"`

	MaxOpenConns    int           `envconfig:"AURANA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"AURANA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"AURANA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AURANA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite database.
func (d DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(d.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"AURANA_REDIS_URL"`
	Address      string        `envconfig:"AURANA_REDIS_ADDR"`
	Password     string        `envconfig:"AURANA_REDIS_PASSWORD"`
	DB           int           `envconfig:"AURANA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AURANA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AURANA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AURANA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AURANA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AURANA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type PagesConfig struct {
	Store       string        `envconfig:"AURANA_PAGE_STORE" default:"memory"`
	TTL         time.Duration `envconfig:"AURANA_PAGE_TTL" default:"2h"`
	LockTimeout time.Duration `envconfig:"AURANA_PAGE_LOCK_TIMEOUT" default:"2s"`
}

// UsesRedis reports whether page carts live in Redis.
func (p PagesConfig) UsesRedis() bool {
	return strings.EqualFold(strings.TrimSpace(p.Store), PageStoreRedis)
}

type StorefrontConfig struct {
	Locale          string `envconfig:"AURANA_LOCALE" default:"ru"`
	Title           string `envconfig:"AURANA_PAGE_TITLE" default:"Элитный шоколад ручной работы"`
	WalletURL       string `envconfig:"AURANA_WALLET_URL" default:"https://wallet.example.com/add"`
	PublicBaseURL   string `envconfig:"AURANA_PUBLIC_BASE_URL" default:"http://auranachocolate.com/"`
	OrderFormAction string `envconfig:"AURANA_ORDER_FORM_ACTION" default:"/order"`
	QRSize          int    `envconfig:"AURANA_QR_SIZE" default:"256"`
}

type RateLimitConfig struct {
	RegisterWindow  time.Duration `envconfig:"AURANA_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterIPLimit int           `envconfig:"AURANA_RATE_LIMIT_REGISTER_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AURANA_AUTO_MIGRATE" default:"true"`
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.App.Env) == "" {
		return fmt.Errorf("%s is required", EnvAppEnv)
	}
	if port, err := strconv.Atoi(strings.TrimSpace(c.App.Port)); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%s must be a TCP port, got %q", EnvPort, c.App.Port)
	}

	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("%s must be one of %s, %s", EnvDBDriver, DBDriverSQLite, DBDriverPostgres)
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}

	switch strings.ToLower(strings.TrimSpace(c.Pages.Store)) {
	case PageStoreMemory:
	case PageStoreRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("%s=%s requires %s or %s", EnvPageStore, PageStoreRedis, EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("%s must be one of %s, %s", EnvPageStore, PageStoreMemory, PageStoreRedis)
	}
	if c.Pages.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvPageTTL)
	}
	return nil
}
