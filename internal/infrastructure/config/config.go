// Package config loads back office settings from config.toml and
// BACKOFFICE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: database.password is BACKOFFICE_DATABASE_PASSWORD
const EnvPrefix = "BACKOFFICE"

// DefaultHouseInvestorID is the house investor used when none is configured
const DefaultHouseInvestorID = "00000000-0000-0000-0000-000000000001"

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Financing FinancingConfig `mapstructure:"financing"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
	// AutoMigrate applies the embedded migrations when the server starts
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// DSN is a postgres:// URL with user and password escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig is optional; an empty Host keeps idempotency keys in memory
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr is host:port, or "" when Redis is not configured
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type HTTPConfig struct {
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
	IdleTimeout      time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes   int           `mapstructure:"max_header_bytes"`
	MaxBodySize      int64         `mapstructure:"max_body_size"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string      `mapstructure:"trusted_proxies"`
	// RateLimitRPS throttles each client IP across the API; 0 disables it.
	// RateLimitBurst defaults to twice the rate.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	// PayoutRateLimitRPS is a tighter per-IP limit on payout routes; 0 disables it
	PayoutRateLimitRPS float64 `mapstructure:"payout_rate_limit_rps"`
}

type SchedulerConfig struct {
	Enabled                bool          `mapstructure:"enabled"`
	PayableRefreshSchedule string        `mapstructure:"payable_refresh_schedule"`
	JobTimeout             time.Duration `mapstructure:"job_timeout"`
}

type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"` // OTLP gRPC, host:port
	SamplingRatio     float64 `mapstructure:"sampling_ratio"`
	ServiceName       string  `mapstructure:"service_name"`
	Insecure          bool    `mapstructure:"insecure"`
	LogsEnabled       bool    `mapstructure:"logs_enabled"`

	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"` // puts bound values into spans
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`

	ProfilingEnabled bool   `mapstructure:"profiling_enabled"`
	ProfilingAddress string `mapstructure:"profiling_address"` // e.g. http://pyroscope:4040
}

// AuthConfig controls operator bearer tokens
type AuthConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Secret   string        `mapstructure:"secret"` // HMAC key, at least 32 bytes
	Issuer   string        `mapstructure:"issuer"` // defaults to app.name
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type FinancingConfig struct {
	// HouseInvestorID absorbs whatever part of a purchase order investors did not fund
	HouseInvestorID string `mapstructure:"house_investor_id"`
	// Epsilon is the tolerance when sums of amounts or percentages are compared
	Epsilon string `mapstructure:"epsilon"`
	// CollectionAttribution is "full" or "proportional"
	CollectionAttribution string        `mapstructure:"collection_attribution"`
	PayoutIdempotencyTTL  time.Duration `mapstructure:"payout_idempotency_ttl"`
}

// HouseInvestor is the parsed HouseInvestorID; Load has already validated it
func (f FinancingConfig) HouseInvestor() uuid.UUID {
	return uuid.MustParse(f.HouseInvestorID)
}

func (f FinancingConfig) EpsilonDecimal() decimal.Decimal {
	eps, err := decimal.NewFromString(f.Epsilon)
	if err != nil {
		return decimal.Zero
	}
	return eps
}

// defaults lists every key Load knows. A key missing here cannot be set from
// the environment, so keys without a useful default are listed with their zero value.
var defaults = map[string]any{
	"app.name": "backoffice",
	"app.env":  "development",
	"app.port": "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "backoffice",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.auto_migrate":       false,

	"redis.host":     "",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":          15 * time.Second,
	"http.write_timeout":         15 * time.Second,
	"http.idle_timeout":          60 * time.Second,
	"http.max_header_bytes":      1 << 20,
	"http.max_body_size":         10 << 20,
	"http.cors_allow_origins":    []string{},
	"http.cors_allow_methods":    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	"http.cors_allow_headers":    []string{"Authorization", "Content-Type", "X-Request-ID", "Idempotency-Key"},
	"http.trusted_proxies":       []string{},
	"http.rate_limit_rps":        0.0,
	"http.rate_limit_burst":      0,
	"http.payout_rate_limit_rps": 0.0,

	"scheduler.enabled":                  false,
	"scheduler.payable_refresh_schedule": "*/5 * * * *",
	"scheduler.job_timeout":              time.Minute,

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "backoffice",
	"telemetry.insecure":                false,
	"telemetry.logs_enabled":            false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.profiling_enabled":       false,
	"telemetry.profiling_address":       "",

	"auth.enabled":   false,
	"auth.secret":    "",
	"auth.issuer":    "",
	"auth.token_ttl": 12 * time.Hour,

	"financing.house_investor_id":      DefaultHouseInvestorID,
	"financing.epsilon":                "0.01",
	"financing.collection_attribution": "full",
	"financing.payout_idempotency_ttl": 24 * time.Hour,
}

// Load reads config.toml from the working directory or /app, then applies
// BACKOFFICE_* environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = cfg.App.Name
	}
	if cfg.HTTP.RateLimitRPS > 0 && cfg.HTTP.RateLimitBurst == 0 {
		cfg.HTTP.RateLimitBurst = int(cfg.HTTP.RateLimitRPS * 2)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		return errors.New("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		return errors.New("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)
	}
	if c.App.Env == "production" {
		if err := c.validateProduction(); err != nil {
			return err
		}
	}

	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be within [0, 1], got %g", c.Telemetry.SamplingRatio)
	}
	if c.Auth.Enabled && len(c.Auth.Secret) < 32 {
		return errors.New("auth.secret must be at least 32 bytes when auth is enabled")
	}

	if _, err := uuid.Parse(c.Financing.HouseInvestorID); err != nil {
		return fmt.Errorf("financing.house_investor_id must be a UUID: %w", err)
	}
	if eps, err := decimal.NewFromString(c.Financing.Epsilon); err != nil || !eps.IsPositive() {
		return fmt.Errorf("financing.epsilon must be a positive decimal, got %q", c.Financing.Epsilon)
	}
	if attr := strings.ToLower(c.Financing.CollectionAttribution); attr != "full" && attr != "proportional" {
		return fmt.Errorf("financing.collection_attribution must be full or proportional, got %q", c.Financing.CollectionAttribution)
	}
	return nil
}

func (c *Config) validateProduction() error {
	switch {
	case c.Database.Password == "":
		return errors.New("database.password is required in production")
	case c.Database.SSLMode == "disable":
		return errors.New("database.sslmode cannot be 'disable' in production")
	case slices.Contains(c.HTTP.CORSAllowOrigins, "*"):
		return errors.New("http.cors_allow_origins cannot contain '*' in production")
	case !c.Auth.Enabled:
		return errors.New("auth.enabled must be true in production")
	case c.Telemetry.DBLogFullSQL:
		return errors.New("telemetry.db_log_full_sql must be false in production")
	}
	return nil
}
