package logger

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// Telegram bot tokens: <bot id>:<35 url-safe chars>
	botTokenPattern = regexp.MustCompile(`\d{6,}:[A-Za-z0-9_-]{30,}`)
	bearerPattern   = regexp.MustCompile(`(?i)^bearer\s+.+$`)
)

// newRedactor masks credential-looking attributes: token fields,
// DigitalOcean personal access tokens and Telegram bot tokens.
func newRedactor() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("token"),
		masq.WithFieldName("Token"),
		masq.WithFieldName("password"),
		masq.WithFieldName("authorization"),
		masq.WithFieldPrefix("secret"),
		masq.WithContain("dop_v1_"),
		masq.WithRegex(botTokenPattern),
		masq.WithRegex(bearerPattern),
	)
}
