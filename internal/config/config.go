// Package config provides unified configuration loading for the receptionist.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the receptionist.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Content       ContentConfig       `yaml:"content"`
	Chat          ChatConfig          `yaml:"chat"`
	Cache         CacheConfig         `yaml:"cache"`
	Analytics     AnalyticsConfig     `yaml:"analytics"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	RequestTimeout   time.Duration `yaml:"request_timeout"` // per request handler deadline
}

// ContentConfig points at the FAQ, menu and site content files.
type ContentConfig struct {
	FAQsPath string `yaml:"faqs_path"`
	MenuPath string `yaml:"menu_path"`
	SitePath string `yaml:"site_path"` // optional
}

// ChatConfig holds response engine settings.
type ChatConfig struct {
	TypingDelayMin time.Duration `yaml:"typing_delay_min"`
	TypingDelayMax time.Duration `yaml:"typing_delay_max"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// AnalyticsConfig selects where chat events are recorded.
type AnalyticsConfig struct {
	Driver   string         `yaml:"driver"` // none, log, sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}

		cfg.Content.FAQsPath = resolveOptional(path, cfg.Content.FAQsPath)
		cfg.Content.MenuPath = resolveOptional(path, cfg.Content.MenuPath)
		cfg.Content.SitePath = resolveOptional(path, cfg.Content.SitePath)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8090,
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     15 * time.Second,
			IdleTimeout:      60 * time.Second,
			GracefulShutdown: 10 * time.Second,
			RequestTimeout:   10 * time.Second,
		},
		Content: ContentConfig{
			FAQsPath: "content/faqs.json",
			MenuPath: "content/menu-data.json",
			SitePath: "content/site-content.json",
		},
		Chat: ChatConfig{
			TypingDelayMin: 600 * time.Millisecond,
			TypingDelayMax: 1200 * time.Millisecond,
			SessionTTL:     30 * time.Minute,
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        30 * time.Minute,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Analytics: AnalyticsConfig{
			Driver: "none",
			SQLite: SQLiteConfig{
				Path:         "/tmp/receptionist-events.db",
				MaxOpenConns: 1,
			},
			Postgres: PostgresConfig{
				MaxOpenConns: 10,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "receptionist",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}

	if c.Content.FAQsPath == "" {
		return fmt.Errorf("content.faqs_path is required")
	}

	if c.Content.MenuPath == "" {
		return fmt.Errorf("content.menu_path is required")
	}

	if c.Chat.TypingDelayMin < 0 || c.Chat.TypingDelayMax < c.Chat.TypingDelayMin {
		return fmt.Errorf("typing delay range invalid: %s..%s", c.Chat.TypingDelayMin, c.Chat.TypingDelayMax)
	}

	if c.Chat.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	switch c.Analytics.Driver {
	case "none", "log", "sqlite":
	case "postgres":
		if c.Analytics.Postgres.DSN == "" {
			return fmt.Errorf("analytics.postgres.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid analytics driver: %s", c.Analytics.Driver)
	}

	if c.Observability.LogFormat != "json" && c.Observability.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s", c.Observability.LogFormat)
	}

	return nil
}

// AnalyticsDSN returns the connection string for the configured SQL driver.
func (c *Config) AnalyticsDSN() string {
	if c.Analytics.Driver == "sqlite" {
		return c.Analytics.SQLite.Path
	}
	return c.Analytics.Postgres.DSN
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("CONTENT_DIR"); v != "" {
		cfg.Content.FAQsPath = filepath.Join(v, "faqs.json")
		cfg.Content.MenuPath = filepath.Join(v, "menu-data.json")
		cfg.Content.SitePath = filepath.Join(v, "site-content.json")
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		if !strings.Contains(v, "://") {
			cfg.Cache.Redis.Addr = v
		} else {
			opts, err := redis.ParseURL(v)
			if err != nil {
				return fmt.Errorf("parse REDIS_URL: %w", err)
			}
			cfg.Cache.Redis.Addr = opts.Addr
			cfg.Cache.Redis.Password = opts.Password
			cfg.Cache.Redis.DB = opts.DB
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		if strings.HasPrefix(v, "sqlite:") {
			cfg.Analytics.Driver = "sqlite"
			cfg.Analytics.SQLite.Path = strings.TrimPrefix(v, "sqlite:")
		} else if strings.HasPrefix(v, "postgres") {
			cfg.Analytics.Driver = "postgres"
			cfg.Analytics.Postgres.DSN = v
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Chat.SessionTTL = d
			cfg.Cache.TTL = d
		}
	}

	return nil
}

// ResolveRelativePath resolves a path relative to the config file location.
func ResolveRelativePath(configPath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	configDir := filepath.Dir(configPath)
	return filepath.Join(configDir, targetPath)
}

func resolveOptional(configPath, targetPath string) string {
	if targetPath == "" {
		return ""
	}
	return ResolveRelativePath(configPath, targetPath)
}
