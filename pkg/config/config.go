package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/byteplus-sdk/sdk-go/pkg/core"
)

const (
	envPrefix      = "BYTEPLUS"
	defaultEnvFile = "configs/.env"
)

// Config holds SDK credentials and transport settings loaded from files and environment variables.
type Config struct {
	TenantID         string        `mapstructure:"tenant_id"`
	Token            string        `mapstructure:"token"`
	LogLevel         string        `mapstructure:"log_level"`
	RequestTimeoutMs int64         `mapstructure:"request_timeout_ms"`
	RequestTimeout   time.Duration `mapstructure:"-"`
}

// Load reads configuration from configs/.env, the optional config file at path,
// and BYTEPLUS_* environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(defaultEnvFile)

	v := viper.New()

	v.SetDefault("tenant_id", "")
	v.SetDefault("token", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout_ms", 0)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMs) * time.Millisecond

	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.TenantID) == "" {
		return errors.New("tenant_id is required")
	}
	if c.Token == "" {
		return errors.New("token is required")
	}
	if c.RequestTimeoutMs < 0 {
		return fmt.Errorf("invalid request_timeout_ms %d (must be zero or positive milliseconds)", c.RequestTimeoutMs)
	}
	return nil
}

// Context builds the signing identity for the configured tenant.
func (c *Config) Context() (*core.Context, error) {
	if c == nil {
		return nil, errors.New("config must not be nil")
	}
	return core.NewContext(c.TenantID, c.Token)
}
