// Package accounts stores the DigitalOcean credentials the bot acts with.
package accounts

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/dobot/core/telegram/callbacks"
)

// ErrNotFound is returned when no account matches the requested id.
var ErrNotFound = errors.New("account not found")

// MaxIDLen is the longest account id that still fits droplet buttons
// ("rename_droplet?doc_id=<id>&droplet_id=<10 digits>") in callback data.
const MaxIDLen = callbacks.MaxDataLen - len("rename_droplet?doc_id=&droplet_id=") - 10

// ValidID reports whether id is short enough for callback data and needs no
// query escaping.
func ValidID(id string) bool {
	if id == "" || len(id) > MaxIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// Account is one stored DigitalOcean account.
type Account struct {
	ID    string `db:"id" yaml:"id" validate:"required,account_id"`
	Name  string `db:"name" yaml:"name"`
	Email string `db:"email" yaml:"email" validate:"omitempty,email"`
	Token string `db:"token" yaml:"token" validate:"required"`
}

// LogValue keeps the API token out of log lines.
func (a Account) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", a.ID),
		slog.String("name", a.Name),
	)
}

// Store resolves accounts by id.
type Store interface {
	Get(ctx context.Context, id string) (Account, error)
}
