package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Bot     BotConfig     `yaml:"bot"`
	Storage StorageConfig `yaml:"storage"`
	Preview PreviewConfig `yaml:"preview"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host          string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port          int           `yaml:"port" envconfig:"SERVER_PORT" default:"8080"`
	PublicBaseURL string        `yaml:"public_base_url" envconfig:"WEBHOOK_URL"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `yaml:"token" envconfig:"BOT_TOKEN"`
	// ChannelID is the chat ID of the origin channel (e.g. -100xxxxxxxxxx).
	// When zero, no channel post ever matches and ingestion is disabled.
	ChannelID int64         `yaml:"channel_id" envconfig:"CHANNEL_CHAT_ID"`
	BaseURL   string        `yaml:"base_url" envconfig:"TELEGRAM_BASE_URL" default:"https://api.telegram.org"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TELEGRAM_TIMEOUT" default:"90s"`
}

// StorageConfig holds filesystem and database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path" envconfig:"DATABASE_PATH" default:"database.db"`
	PreviewPath  string `yaml:"preview_path" envconfig:"PREVIEW_PATH" default:"static/previews"`
	TempPath     string `yaml:"temp_path" envconfig:"TEMP_PATH" default:"/tmp"`
}

// PreviewConfig holds preview generation configuration.
type PreviewConfig struct {
	DurationSeconds int `yaml:"duration_seconds" envconfig:"PREVIEW_DURATION_SECONDS" default:"10"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
// A missing bot token or channel ID is deliberately not fatal here:
// the serving core starts without them and simply never matches any
// inbound channel post. Only cmd/set-webhook requires them up front.
func (c *Config) Validate() error {
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Storage.PreviewPath == "" {
		return fmt.Errorf("PREVIEW_PATH is required")
	}
	if c.Preview.DurationSeconds <= 0 {
		return fmt.Errorf("PREVIEW_DURATION_SECONDS must be positive")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
