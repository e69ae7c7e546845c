package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/dobot/core/logger"
	tghelpers "github.com/m3rciful/dobot/core/telegram/helpers"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

// limiterIdle is how long an unused per-user limiter is kept.
const limiterIdle = 10 * time.Minute

// RateLimitOptions configures RateLimitMiddleware.
// Exclude holds update kinds (callback, message, inline_query) that are never limited.
type RateLimitOptions struct {
	Interval  time.Duration
	Exclude   []string
	OnLimited tele.HandlerFunc
}

type userLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type limiters struct {
	mu       sync.Mutex
	every    rate.Limit
	users    map[int64]*userLimiter
	lastScan time.Time
}

func (l *limiters) allow(userID int64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastScan) > limiterIdle {
		for id, u := range l.users {
			if now.Sub(u.lastSeen) > limiterIdle {
				delete(l.users, id)
			}
		}
		l.lastScan = now
	}

	u, ok := l.users[userID]
	if !ok {
		u = &userLimiter{lim: rate.NewLimiter(l.every, 1)}
		l.users[userID] = u
	}
	u.lastSeen = now
	return u.lim.AllowN(now, 1)
}

func updateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return "callback"
	case upd.Message != nil:
		return "message"
	case upd.Query != nil:
		return "inline_query"
	}
	return "other"
}

// RateLimitMiddleware allows one update per Interval for each user.
// Limited updates are dropped; callbacks are answered so buttons do not hang.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	skip := make(map[string]bool, len(opts.Exclude))
	for _, k := range opts.Exclude {
		skip[k] = true
	}
	state := &limiters{
		every: rate.Every(opts.Interval),
		users: make(map[int64]*userLimiter),
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		if opts.Interval <= 0 {
			return next
		}
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			kind := updateKind(c.Update())
			if skip[kind] || state.allow(user.ID, time.Now()) {
				return next(c)
			}

			logger.Warn(tghelpers.BuildContext(c), "tg", "tg.rate_limit",
				slog.String("status", "rate_limited"),
				slog.String("kind", kind),
			)
			if opts.OnLimited != nil {
				return opts.OnLimited(c)
			}
			if c.Callback() != nil {
				return c.Respond()
			}
			return nil
		}
	}
}
