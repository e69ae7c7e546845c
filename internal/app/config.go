package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/dobot/core/config"
	coredatabase "github.com/m3rciful/dobot/core/database"
	"github.com/m3rciful/dobot/internal/accounts"
	"github.com/m3rciful/dobot/internal/digitalocean"
)

// DigitalOceanConfig configures the API client.
type DigitalOceanConfig struct {
	APIURL string `yaml:"api_url" envconfig:"DO_API_URL" validate:"omitempty,url"`
	// ActionTimeoutSeconds bounds every API call; 0 -> 30s.
	ActionTimeoutSeconds int `yaml:"action_timeout_seconds" envconfig:"DO_ACTION_TIMEOUT_SECONDS" validate:"min=0"`
}

// Timeout returns the configured call timeout.
func (c DigitalOceanConfig) Timeout() time.Duration {
	if c.ActionTimeoutSeconds <= 0 {
		return digitalocean.DefaultTimeout
	}
	return time.Duration(c.ActionTimeoutSeconds) * time.Second
}

// MetricsConfig configures the Prometheus listener.
type MetricsConfig struct {
	// Listen is a host:port for /metrics; empty disables the listener.
	Listen string `yaml:"listen" envconfig:"METRICS_LISTEN" validate:"omitempty,hostname_port"`
}

// Config is the full bot configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database     coredatabase.Config `yaml:"database"`
	DigitalOcean DigitalOceanConfig  `yaml:"digitalocean"`
	Metrics      MetricsConfig       `yaml:"metrics"`
	// Accounts are served directly without a database and seeded into it otherwise.
	Accounts []accounts.Account `yaml:"accounts" ignored:"true" validate:"dive"`
}

// CoreConfig exposes the shared core section.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// LoadConfig reads path, overlays the environment and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates cfg and fills defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	if c.Database.Enabled() {
		if strings.TrimSpace(c.Database.Name) == "" {
			return errors.New("database.name is required when database.host is set")
		}
		if c.Database.Port == "" {
			c.Database.Port = "5432"
		}
	} else if len(c.Accounts) == 0 {
		return errors.New("accounts are required when no database is configured")
	}
	seen := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		if seen[a.ID] {
			return fmt.Errorf("accounts[%d]: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}
