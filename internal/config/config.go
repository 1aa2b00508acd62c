package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. QUILL_API_BASE_URL.
const EnvPrefix = "quill"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	APIBaseURL            string        `mapstructure:"api_base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	OutputFormat          string        `mapstructure:"output_format"`

	TokenStoreType        string        `mapstructure:"token_store_type"`
	TokenStorePath        string        `mapstructure:"token_store_path"`
	TokenTTLSeconds       int64         `mapstructure:"token_ttl_seconds"`
	TokenTTL              time.Duration `mapstructure:"-"`
	NotificationTimeoutMs int64         `mapstructure:"notification_timeout_ms"`
	NotificationTimeout   time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and the optional configs/.env file.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "quill")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_base_url", "http://localhost:3000/api")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("output_format", "json")
	v.SetDefault("token_store_type", "bbolt")
	v.SetDefault("token_store_path", "./data/quill.db")
	v.SetDefault("token_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("notification_timeout_ms", 3000)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("invalid api_base_url (must not be empty)")
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.TokenTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid token_ttl_seconds (must be positive seconds)")
	}
	cfg.TokenTTL = time.Duration(cfg.TokenTTLSeconds) * time.Second

	if cfg.NotificationTimeoutMs <= 0 {
		return nil, fmt.Errorf("invalid notification_timeout_ms (must be positive milliseconds)")
	}
	cfg.NotificationTimeout = time.Duration(cfg.NotificationTimeoutMs) * time.Millisecond

	cfg.TokenStoreType = strings.ToLower(strings.TrimSpace(cfg.TokenStoreType))
	switch cfg.TokenStoreType {
	case "bbolt", "memory", "none":
	default:
		return nil, fmt.Errorf("invalid token_store_type %q (expected bbolt, memory or none)", cfg.TokenStoreType)
	}

	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	switch cfg.OutputFormat {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("invalid output_format %q (expected json or yaml)", cfg.OutputFormat)
	}

	return &cfg, nil
}
