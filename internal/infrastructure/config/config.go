package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	Log           LogConfig
	HTTP          HTTPConfig
	Database      DatabaseConfig
	Catalog       DirectoryConfig
	UserDirectory DirectoryConfig
	BankDirectory DirectoryConfig
	Checkout      CheckoutConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// DatabaseConfig holds SQLite storage settings
type DatabaseConfig struct {
	Path string
}

// DirectoryConfig holds settings for one upstream HTTP directory
type DirectoryConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CheckoutConfig holds checkout flow settings
type CheckoutConfig struct {
	ConfirmationCode string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SHOP_ prefix (e.g. SHOP_DATABASE_PATH)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Catalog: DirectoryConfig{
			BaseURL: v.GetString("catalog.base_url"),
			Timeout: v.GetDuration("catalog.timeout"),
		},
		UserDirectory: DirectoryConfig{
			BaseURL: v.GetString("user_directory.base_url"),
			Timeout: v.GetDuration("user_directory.timeout"),
		},
		BankDirectory: DirectoryConfig{
			BaseURL: v.GetString("bank_directory.base_url"),
			Timeout: v.GetDuration("bank_directory.timeout"),
		},
		Checkout: CheckoutConfig{
			ConfirmationCode: v.GetString("checkout.confirmation_code"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID", "X-Cart-Key"}
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "storefront.db"
	}
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "http://localhost:3000"
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 10 * time.Second
	}
	if cfg.UserDirectory.BaseURL == "" {
		cfg.UserDirectory.BaseURL = "https://671932597fc4c5ff8f4cd0cc.mockapi.io"
	}
	if cfg.UserDirectory.Timeout == 0 {
		cfg.UserDirectory.Timeout = 10 * time.Second
	}
	if cfg.BankDirectory.BaseURL == "" {
		cfg.BankDirectory.BaseURL = "https://api.vietqr.io"
	}
	if cfg.BankDirectory.Timeout == 0 {
		cfg.BankDirectory.Timeout = 10 * time.Second
	}
	if cfg.Checkout.ConfirmationCode == "" {
		cfg.Checkout.ConfirmationCode = "123456"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path cannot be empty")
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url cannot be empty")
	}
	if c.UserDirectory.BaseURL == "" {
		return fmt.Errorf("user_directory.base_url cannot be empty")
	}
	if c.BankDirectory.BaseURL == "" {
		return fmt.Errorf("bank_directory.base_url cannot be empty")
	}
	if c.Checkout.ConfirmationCode == "" {
		return fmt.Errorf("checkout.confirmation_code cannot be empty")
	}
	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}
	return nil
}
