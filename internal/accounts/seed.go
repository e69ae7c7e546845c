package accounts

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/dobot/core/bootstrap"
	"github.com/m3rciful/dobot/core/logger"

	"github.com/jmoiron/sqlx"
)

// Seeder upserts list into the accounts table on startup.
func Seeder(list []Account) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
		if len(list) == 0 {
			return nil
		}
		start := time.Now()
		store := NewSQLStore(db)
		for _, a := range list {
			if err := store.Upsert(ctx, a); err != nil {
				logger.SEED.Error("accounts seed failed",
					slog.String("event", "db.seed"),
					slog.String("status", "fail"),
					slog.String("account_id", a.ID),
					slog.String("err", err.Error()),
				)
				return err
			}
		}
		logger.SEED.Info("accounts seeded",
			slog.String("event", "db.seed"),
			slog.String("status", "ok"),
			slog.Int("count", len(list)),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
		return nil
	})
}
