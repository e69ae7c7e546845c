// Package app wires the droplet bot: configuration, storage, the DigitalOcean
// client and the Telegram routes.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/dobot/core/bootstrap"
	"github.com/m3rciful/dobot/core/logger"
	"github.com/m3rciful/dobot/core/metrics"
	tg "github.com/m3rciful/dobot/core/telegram"
	"github.com/m3rciful/dobot/core/telegram/commands"
	tghelpers "github.com/m3rciful/dobot/core/telegram/helpers"
	"github.com/m3rciful/dobot/core/telegram/router"
	"github.com/m3rciful/dobot/core/telegram/state"
	"github.com/m3rciful/dobot/core/telegram/ui"
	"github.com/m3rciful/dobot/internal/accounts"
	"github.com/m3rciful/dobot/internal/digitalocean"
	"github.com/m3rciful/dobot/internal/rename"

	tele "gopkg.in/telebot.v4"
)

const startText = "<b>👋 Droplet bot</b>\n\n" +
	"Open a droplet, then press ✏️ Rename.\n\n"

// App holds the long-lived services of a running bot.
type App struct {
	cfg      *Config
	infra    *bootstrap.Result
	accounts accounts.Store
	do       *digitalocean.Client
	sessions *state.Memory[rename.Context]
	registry *tg.Registry
	metrics  *metrics.Metrics
	server   *metrics.Server
}

// Bootstrap initializes logging and storage and builds the services.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	opts := bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	}
	if cfg.Database.Enabled() {
		opts.Migrations = accounts.Migrations
		opts.MigrationsDir = accounts.MigrationsDir
		opts.Modules.Seeders = []bootstrap.Seeder{accounts.Seeder(cfg.Accounts)}
	}
	infra, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	store, err := newAccountStore(cfg, infra)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	m := metrics.New()
	client, err := digitalocean.New(digitalocean.Config{
		APIURL:  cfg.DigitalOcean.APIURL,
		Timeout: cfg.DigitalOcean.Timeout(),
		Metrics: m,
	})
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	logger.Component("app").Info("services ready",
		slog.String("event", "bootstrap"),
		slog.Bool("database", infra.DB != nil),
		slog.Int("accounts_configured", len(cfg.Accounts)),
		slog.Duration("do_timeout", client.Timeout()),
		slog.String("metrics_listen", cfg.Metrics.Listen),
	)

	return &App{
		cfg:      cfg,
		infra:    infra,
		accounts: store,
		do:       client,
		sessions: state.NewMemory[rename.Context](),
		registry: tg.NewRegistry(),
		metrics:  m,
	}, nil
}

func newAccountStore(cfg *Config, infra *bootstrap.Result) (accounts.Store, error) {
	if infra.DB != nil {
		return accounts.NewSQLStore(infra.DB), nil
	}
	store, err := accounts.NewStatic(cfg.Accounts)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return store, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.infra.Close()
}

// TelegramRunOptions describes middlewares and routes for the bot runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := a.cfg.CoreConfig()
	fallbacks := ui.Fallbacks{
		Text:          "🤔 I did not understand that. Send /start for help.",
		CallbackAlert: "This button is no longer supported",
	}
	mws := tg.DefaultMiddlewares(core, tg.MiddlewareOptions{})
	return tg.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: mws,
		BuildRoutes: func(rt tg.Runtime) ([]tg.Route, error) {
			return a.routes(tghelpers.BotMessenger{Bot: rt.Bot}, fallbacks)
		},
		OnStart: a.startMetrics,
		OnStop:  a.stopMetrics,
	}, nil
}

func (a *App) startMetrics(context.Context, tg.Runtime) error {
	router.OnHandled(a.metrics.HandlerDone)
	addr := a.cfg.Metrics.Listen
	if addr == "" {
		return nil
	}
	srv, err := metrics.Listen(addr, a.metrics)
	if err != nil {
		return fmt.Errorf("app: metrics: %w", err)
	}
	a.server = srv
	return nil
}

func (a *App) stopMetrics(ctx context.Context, _ tg.Runtime) error {
	router.OnHandled(nil)
	if a.server == nil {
		return nil
	}
	err := a.server.Shutdown(ctx)
	a.server = nil
	return err
}

func (a *App) routes(msgr rename.Messenger, fallbacks ui.FallbackProvider) ([]tg.Route, error) {
	detail := &DetailView{Accounts: a.accounts, Droplets: a.do}
	flow, err := rename.New(rename.Deps{
		Accounts:  a.accounts,
		Provider:  a.do,
		Messenger: msgr,
		Sessions:  a.sessions,
		Detail:    detail,
		Metrics:   a.metrics,
	})
	if err != nil {
		return nil, err
	}

	err = a.registry.RegisterCommand("/start", commands.Command{
		Handler: func(c tele.Context) error {
			return tghelpers.SendHTML(c, startText+a.registry.HelpText())
		},
		Description: "Show help",
	})
	if err != nil {
		return nil, err
	}
	if err := detail.Register(a.registry); err != nil {
		return nil, err
	}
	if err := flow.Register(a.registry); err != nil {
		return nil, err
	}
	a.registry.SetCallbackNotFound(fallbacks.UnknownCallback())

	core := a.cfg.CoreConfig()
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{AdminID: core.Telegram.AdminID})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(a.registry, router.TextOptions{
		Claimers:    []router.Claimer{flow.Claimer()},
		UnknownText: fallbacks.UnknownText(),
	})...)
	return routes, nil
}
