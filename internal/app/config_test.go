package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/dobot/internal/accounts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigStaticAccounts(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
  admin_id: 99
digitalocean:
  api_url: "https://do.example.test/"
accounts:
  - id: main
    name: Main
    token: dop_v1_secret
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(99), cfg.Telegram.AdminID)
	assert.Equal(t, "longpoll", cfg.Telegram.RunMode)
	assert.Equal(t, "https://do.example.test/", cfg.DigitalOcean.APIURL)
	assert.Equal(t, 30*time.Second, cfg.DigitalOcean.Timeout())
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, "dop_v1_secret", cfg.Accounts[0].Token)
	assert.False(t, cfg.Database.Enabled())
	assert.Same(t, &cfg.Config, cfg.CoreConfig())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "from-file"
database:
  host: db
  name: dobot
`)
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("DO_ACTION_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, 5*time.Second, cfg.DigitalOcean.Timeout())
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestLoadConfigRequiresAccountsWithoutDatabase(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: x\n")
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "accounts are required")
}

func TestLoadConfigRejectsIncompleteAccount(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: x\naccounts:\n  - id: main\n")
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "accounts[0].token is required")
}

func TestLoadConfigRejectsNegativeTimeout(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: x\ndigitalocean:\n  action_timeout_seconds: -1\naccounts:\n  - {id: a, token: t}\n")
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "action_timeout_seconds")
}

func TestLoadConfigRejectsBadFields(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: x
digitalocean:
  api_url: "not a url"
accounts:
  - {id: a, token: t, email: nope}
  - {id: a, token: t}
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digitalocean.api_url must be a valid URL")
	assert.Contains(t, err.Error(), "accounts[0].email must be an email address")
}

func TestNormalizeRejectsDuplicateAccounts(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: x\naccounts:\n  - {id: a, token: t}\n  - {id: a, token: u}\n")
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, `duplicate id "a"`)
}

func TestLoadConfigMetricsListen(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: x\nmetrics:\n  listen: \":9090\"\naccounts:\n  - {id: a, token: t}\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Metrics.Listen)

	path = writeConfig(t, "telegram:\n  token: x\nmetrics:\n  listen: nope\naccounts:\n  - {id: a, token: t}\n")
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, "metrics.listen must be host:port")
}

func TestLoadConfigRejectsAccountIDTooLongForButtons(t *testing.T) {
	long := strings.Repeat("a", accounts.MaxIDLen+1)
	path := writeConfig(t, "telegram:\n  token: x\naccounts:\n  - {id: "+long+", token: t}\n")
	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "accounts[0].id must be at most 20 letters")

	path = writeConfig(t, "telegram:\n  token: x\naccounts:\n  - {id: \"ops team\", token: t}\n")
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, "accounts[0].id must be at most")

	path = writeConfig(t, "telegram:\n  token: x\naccounts:\n  - {id: "+long[1:]+", token: t}\n")
	_, err = LoadConfig(path)
	require.NoError(t, err)
}
