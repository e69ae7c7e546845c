package router

import (
	"time"

	tg "github.com/m3rciful/dobot/core/telegram"
	tghelpers "github.com/m3rciful/dobot/core/telegram/helpers"
	"github.com/m3rciful/dobot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Claimer inspects a text update and reports whether it consumed it.
// Conversation flows waiting for free-text input implement it.
type Claimer struct {
	Name  string
	Claim func(c tele.Context) (bool, error)
}

// TextOptions controls claimers and fallback behaviour for text updates.
type TextOptions struct {
	Claimers    []Claimer
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the handler for free-text routing.
// Order: claimers, then registered commands and aliases, then fallbacks.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()

		for _, cl := range opts.Claimers {
			if cl.Claim == nil {
				continue
			}
			name := "claim." + normalizeHandlerName(cl.Name)
			tghelpers.WithHandler(c, name)
			claimed, err := cl.Claim(c)
			if claimed || err != nil {
				logHandlerSummary(c, name, start, "", err)
				return err
			}
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
