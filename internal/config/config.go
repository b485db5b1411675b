package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"CryptoBuddy/internal/logger"
)

// DefaultPath is read when neither --config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// DefaultDigestCron broadcasts the digest every day at 09:00.
const DefaultDigestCron = "0 0 9 * * *"

// Config holds all application configuration.
type Config struct {
	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present), the YAML file at path (if present), then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	// Variables already in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	overrides := []struct {
		env string
		dst *string
	}{
		{"CATALOG_PATH", &cfg.Catalog.Path},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FORMAT", &cfg.Log.Format},
		{"TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID},
		{"CRON_DIGEST", &cfg.Schedule.DigestCron},
		{"SQLITE_PATH", &cfg.Database.SQLitePath},
		{"METRICS_ADDR", &cfg.Metrics.Addr},
		{"HTTPS_PROXY", &cfg.Proxy},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}

	// Defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = DefaultDigestCron
	}

	return cfg, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !validFormat(c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v, got %q", logger.Formats, c.Log.Format)
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Schedule.DigestCron); err != nil {
		return fmt.Errorf("schedule.digest_cron: %w", err)
	}
	return nil
}

// ValidateTelegram checks the settings the Telegram front-end needs on top of Validate.
func (c *Config) ValidateTelegram() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	return nil
}

// DigestEnabled reports whether a chat is configured to receive the scheduled digest.
func (c *Config) DigestEnabled() bool {
	return c.Telegram.ChatID != ""
}

func validFormat(f string) bool {
	for _, known := range logger.Formats {
		if f == known {
			return true
		}
	}
	return false
}
