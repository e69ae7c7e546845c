package telegram

import (
	"time"

	coreconfig "github.com/m3rciful/dobot/core/config"
	"github.com/m3rciful/dobot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// MiddlewareOptions carries the hooks of DefaultMiddlewares.
type MiddlewareOptions struct {
	OnLimited  tele.HandlerFunc
	OnRejected tele.HandlerFunc
}

// DefaultMiddlewares builds the global chain: recover, logger, access,
// rate_limit, metrics. Access and rate limiting are added only when cfg enables them.
func DefaultMiddlewares(cfg *coreconfig.Config, opts MiddlewareOptions) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
	}
	if cfg == nil {
		return append(mws, Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware})
	}

	if cfg.Telegram.AdminID != 0 {
		mws = append(mws, Middleware{
			Name: "access",
			Use: middleware.AccessMiddleware(middleware.AccessOptions{
				Users:    []int64{cfg.Telegram.AdminID},
				OnReject: opts.OnRejected,
			}),
		})
	}
	if cfg.RateLimit.IntervalMS > 0 {
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval:  time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:   cfg.RateLimit.ExcludeUpdates,
				OnLimited: opts.OnLimited,
			}),
		})
	}
	return append(mws, Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware})
}
