package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	coreconfig "github.com/m3rciful/dobot/core/config"
	coredatabase "github.com/m3rciful/dobot/core/database"
	"github.com/m3rciful/dobot/core/logger"

	"github.com/jmoiron/sqlx"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config   *coreconfig.Config
	Database coredatabase.Config

	// Migrations holds *.up.sql files under MigrationsDir. Nil skips migrations.
	Migrations    fs.FS
	MigrationsDir string

	Modules Modules

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(ctx context.Context, cfg coredatabase.Config, fsys fs.FS, dir string) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
// DB is nil when no database is configured.
type Result struct {
	DB *sqlx.DB
}

// Close releases the database connection, if any.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run initializes the logger and, when a database is configured, connects,
// applies migrations and runs seeders.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	if !opts.Database.Enabled() {
		logger.DB.Info("database disabled",
			slog.String("event", "db.connect"),
			slog.String("status", "skip"),
		)
		return &Result{}, nil
	}

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	if opts.Migrations != nil {
		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		dir := opts.MigrationsDir
		if dir == "" {
			dir = "."
		}
		if err := migrate(ctx, opts.Database, opts.Migrations, dir); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
	}

	if err := opts.Modules.Seed(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: seeding failed: %w", err)
	}

	return &Result{DB: db}, nil
}
