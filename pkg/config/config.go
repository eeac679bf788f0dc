package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and deploy manifests.
const (
	EnvAppEnv   = "AROMACRAFT_APP_ENV"
	EnvPort     = "AROMACRAFT_APP_PORT"
	EnvDBDSN    = "AROMACRAFT_DB_DSN"
	EnvRedisURL = "AROMACRAFT_REDIS_URL"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
	Deal         DealConfig
	FormLimits   FormRateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AROMACRAFT_APP_ENV" required:"true"`
	Port         string `envconfig:"AROMACRAFT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AROMACRAFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AROMACRAFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"AROMACRAFT_DB_DSN"`

	Host     string `envconfig:"AROMACRAFT_DB_HOST"`
	Port     int    `envconfig:"AROMACRAFT_DB_PORT" default:"5432"`
	User     string `envconfig:"AROMACRAFT_DB_USER"`
	Password string `envconfig:"AROMACRAFT_DB_PASSWORD"`
	Name     string `envconfig:"AROMACRAFT_DB_NAME"`
	SSLMode  string `envconfig:"AROMACRAFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AROMACRAFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AROMACRAFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AROMACRAFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AROMACRAFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"AROMACRAFT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AROMACRAFT_REDIS_ADDR"`
	Password     string        `envconfig:"AROMACRAFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"AROMACRAFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AROMACRAFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AROMACRAFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AROMACRAFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AROMACRAFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AROMACRAFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the anonymous storefront session that stands in for
// the single browser tab: one session, one logical cart writer.
type SessionConfig struct {
	CookieName string        `envconfig:"AROMACRAFT_SESSION_COOKIE" default:"ac_session"`
	TTL        time.Duration `envconfig:"AROMACRAFT_SESSION_TTL" default:"168h"`
}

// PricingConfig carries the storefront money rules. The defaults are the
// contract: flat shipping below the free-shipping cutoff and an 8% tax line.
type PricingConfig struct {
	ShippingFee      string `envconfig:"AROMACRAFT_PRICING_SHIPPING_FEE" default:"5.99"`
	FreeShippingOver string `envconfig:"AROMACRAFT_PRICING_FREE_SHIPPING_OVER" default:"50"`
	TaxRate          string `envconfig:"AROMACRAFT_PRICING_TAX_RATE" default:"0.08"`
}

// CheckoutConfig governs the human-verification step. An empty secret
// disables the challenge and checkout skips straight to payment details.
type CheckoutConfig struct {
	ChallengeSecret string `envconfig:"AROMACRAFT_CHECKOUT_CHALLENGE_SECRET"`
}

// DealConfig controls the featured-deal countdown on the offers page.
type DealConfig struct {
	Window time.Duration `envconfig:"AROMACRAFT_DEAL_WINDOW" default:"120h"`
}

// FormRateLimitConfig throttles the events and newsletter form posts.
type FormRateLimitConfig struct {
	Window time.Duration `envconfig:"AROMACRAFT_FORM_RATE_WINDOW" default:"1m"`
	Limit  int           `envconfig:"AROMACRAFT_FORM_RATE_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AROMACRAFT_AUTO_MIGRATE" default:"false"`
}
