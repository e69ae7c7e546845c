package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/dobot/core/config"
	coretelegram "github.com/m3rciful/dobot/core/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type fakeApp struct {
	closed bool
}

func (a *fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{}, nil
}

func (a *fakeApp) Close() error {
	a.closed = true
	return nil
}

func TestRunRequiresConfigPath(t *testing.T) {
	t.Setenv("DOBOT_TEST_CONFIG", "")
	err := Run(Options{
		ConfigEnvVar: "DOBOT_TEST_CONFIG",
		LoadConfig:   func(string) (ConfigCarrier, error) { return carrier{}, nil },
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return &fakeApp{}, nil
		},
	})
	require.ErrorContains(t, err, "config path not provided")
}

func TestRunWiresLifecycleAndClosesApp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	t.Setenv("DOBOT_TEST_CONFIG", path)

	app := &fakeApp{}
	var gotPath string
	err := Run(Options{
		ConfigEnvVar: "DOBOT_TEST_CONFIG",
		LoadConfig: func(p string) (ConfigCarrier, error) {
			gotPath = p
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			require.NotNil(t, opts.OnStart)
			require.NotNil(t, opts.OnStop)
			require.NoError(t, opts.OnStart(ctx, coretelegram.Runtime{}))
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.True(t, app.closed)
}

func TestRunReportsBootstrapFailure(t *testing.T) {
	t.Setenv("DOBOT_TEST_CONFIG", "unused.yaml")
	err := Run(Options{
		ConfigEnvVar: "DOBOT_TEST_CONFIG",
		LoadConfig: func(string) (ConfigCarrier, error) {
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return nil, errors.New("no db")
		},
	})
	require.ErrorContains(t, err, "no db")
}
