// Package config provides configuration management for the PickPulse service.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Decision    DecisionConfig    `mapstructure:"decision"`
	Upstream    UpstreamConfig    `mapstructure:"upstream"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Performance PerformanceConfig `mapstructure:"performance" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port                  int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds    int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds   int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	CORSOrigins           []string `mapstructure:"cors_origins"`
}

// DecisionConfig overrides the decision engine's built-in tables.
// Zero values keep the built-in defaults.
type DecisionConfig struct {
	Version        string             `mapstructure:"version"`
	DefaultCap     float64            `mapstructure:"default_cap" validate:"omitempty,gte=0.52,lte=0.95"`
	LeagueCaps     map[string]float64 `mapstructure:"league_caps" validate:"omitempty,leaguecaps"`
	Thresholds     ThresholdsConfig   `mapstructure:"thresholds"`
	MaxStrongLeans int                `mapstructure:"max_strong_leans" validate:"gte=0"`
	MaxWatchlist   int                `mapstructure:"max_watchlist" validate:"gte=0"`
}

// ThresholdsConfig represents the raw score needed for each tier
type ThresholdsConfig struct {
	TopPick    float64 `mapstructure:"top_pick" validate:"gte=0,lte=100"`
	StrongLean float64 `mapstructure:"strong_lean" validate:"gte=0,lte=100"`
	Watchlist  float64 `mapstructure:"watchlist" validate:"gte=0,lte=100"`
}

// UpstreamConfig represents the model slate endpoint
type UpstreamConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	SlateURL       string  `mapstructure:"slate_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// PerformanceConfig represents performance reporting configuration
type PerformanceConfig struct {
	SeasonStart     string `mapstructure:"season_start" validate:"required,datetime=2006-01-02"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize    int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
	RefreshEnabled  bool   `mapstructure:"refresh_enabled"`
	RefreshSchedule string `mapstructure:"refresh_schedule" validate:"omitempty,cronspec"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DSN returns a PostgreSQL connection URL with the credentials escaped
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// SeasonStartDate returns the configured season start as a UTC date
func (c *Config) SeasonStartDate() (time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Performance.SeasonStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid season_start: %w", err)
	}
	return start.UTC(), nil
}

// CacheTTL returns the performance report cache TTL
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Performance.CacheTTLSeconds) * time.Second
}

// RequestTimeout returns the per-request handler timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}
