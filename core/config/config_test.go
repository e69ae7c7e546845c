package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsToLongpoll(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
rate_limit:
  interval_ms: 500
  exclude_updates: ["Callback", " message "]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, []string{"callback", "message"}, cfg.RateLimit.ExcludeUpdates)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "from-file"
`)
	t.Setenv("BOT_TOKEN", "from-env")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
}

func TestNormalizeRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing token", cfg: Config{}},
		{name: "unknown run mode", cfg: Config{Telegram: TelegramConfig{Token: "t", RunMode: "socket"}}},
		{name: "webhook without url", cfg: Config{Telegram: TelegramConfig{Token: "t", RunMode: "webhook"}}},
		{name: "negative poll timeout", cfg: Config{Telegram: TelegramConfig{Token: "t", LongPollTimeoutSeconds: -1}}},
		{name: "bad exclusion", cfg: Config{
			Telegram:  TelegramConfig{Token: "t"},
			RateLimit: RateLimitConfig{ExcludeUpdates: []string{"poll"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			assert.Error(t, Normalize(&cfg))
		})
	}
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := Config{Telegram: TelegramConfig{Token: "t", RunMode: "Polling"}}
	require.NoError(t, Normalize(&cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeDropsEmptyExclusions(t *testing.T) {
	cfg := Config{
		Telegram:  TelegramConfig{Token: "t"},
		RateLimit: RateLimitConfig{ExcludeUpdates: []string{" ", "CALLBACK"}},
	}
	require.NoError(t, Normalize(&cfg))
	assert.Equal(t, []string{"callback"}, cfg.RateLimit.ExcludeUpdates)
}

func TestNormalizeWebhookMode(t *testing.T) {
	cfg := Config{
		Telegram: TelegramConfig{Token: "t", RunMode: " Webhook "},
		Webhook:  WebhookConfig{URL: "https://bot.example.com/hook", Listen: "0.0.0.0", Port: 8443},
	}
	require.NoError(t, Normalize(&cfg))
	assert.Equal(t, RunModeWebhook, cfg.Telegram.RunMode)

	cfg.Webhook.Port = 0
	assert.Error(t, Normalize(&cfg))
}
