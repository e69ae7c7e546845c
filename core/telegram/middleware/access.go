package middleware

import (
	"log/slog"

	"github.com/m3rciful/dobot/core/logger"
	tghelpers "github.com/m3rciful/dobot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// AccessOptions lists the users allowed past the middleware.
// An empty Users list allows everybody.
type AccessOptions struct {
	Users    []int64
	OnReject tele.HandlerFunc
}

// AccessMiddleware drops updates from senders outside opts.Users.
// Rejected callbacks are still answered so the client stops its spinner.
func AccessMiddleware(opts AccessOptions) tele.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(opts.Users))
	for _, id := range opts.Users {
		if id != 0 {
			allowed[id] = struct{}{}
		}
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		if len(allowed) == 0 {
			return next
		}
		return func(c tele.Context) error {
			if u := c.Sender(); u != nil {
				if _, ok := allowed[u.ID]; ok {
					return next(c)
				}
			}
			logger.Warn(tghelpers.BuildContext(c), "tg", "tg.access",
				slog.String("status", "skip"),
				slog.String("reason", "not_allowed"),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			if c.Callback() != nil {
				return c.Respond()
			}
			return nil
		}
	}
}
