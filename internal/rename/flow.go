// Package rename implements the two-step droplet rename conversation:
// the user presses Rename, then types the new name.
package rename

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/dobot/core/logger"
	"github.com/m3rciful/dobot/core/metrics"
	"github.com/m3rciful/dobot/core/telegram/keyboard"
	"github.com/m3rciful/dobot/core/telegram/state"
	"github.com/m3rciful/dobot/internal/accounts"
	"github.com/m3rciful/dobot/internal/digitalocean"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"
)

const component = "flow.rename"

// Provider is the part of the DigitalOcean client the flow needs.
type Provider interface {
	Droplet(ctx context.Context, token string, id int) (digitalocean.Droplet, error)
	Rename(ctx context.Context, token string, id int, name string) error
}

// Deps groups the collaborators of Flow. All fields but Metrics are required.
type Deps struct {
	Accounts  accounts.Store
	Provider  Provider
	Messenger Messenger
	Sessions  state.Store[Context]
	Detail    DetailView
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Flow runs rename conversations. It is safe for concurrent use.
type Flow struct {
	accounts accounts.Store
	provider Provider
	msgr     Messenger
	sessions state.Store[Context]
	detail   DetailView
	metrics  *metrics.Metrics
}

// New validates deps and builds a Flow.
func New(d Deps) (*Flow, error) {
	switch {
	case d.Accounts == nil:
		return nil, errors.New("rename: nil account store")
	case d.Provider == nil:
		return nil, errors.New("rename: nil provider")
	case d.Messenger == nil:
		return nil, errors.New("rename: nil messenger")
	case d.Sessions == nil:
		return nil, errors.New("rename: nil session store")
	case d.Detail == nil:
		return nil, errors.New("rename: nil detail view")
	}
	return &Flow{
		accounts: d.Accounts,
		provider: d.Provider,
		msgr:     d.Messenger,
		sessions: d.Sessions,
		detail:   d.Detail,
		metrics:  d.Metrics,
	}, nil
}

// Start loads the droplet, stores a Context for userID and turns target into
// the rename prompt. A previous context of the user is replaced. On lookup
// failure target shows the error and nothing is stored; when the prompt
// cannot be delivered the new context is dropped again.
func (f *Flow) Start(ctx context.Context, userID int64, target tele.Editable, ref DropletRef) error {
	attrs := []slog.Attr{
		slog.String("account_id", ref.AccountRef),
		slog.Int("droplet_id", ref.DropletID),
	}

	droplet, err := f.lookup(ctx, ref)
	if err != nil {
		flowErr := &Error{Kind: KindLookup, Op: "start", Err: err}
		f.metrics.RenameEvent("start", "fail")
		logger.Warn(ctx, component, "rename.start", append(attrs,
			slog.String("status", "fail"),
			slog.String("kind", flowErr.Kind.String()),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)...)
		return errors.Join(flowErr, delivery("lookup_failed", f.msgr.Edit(target, lookupFailedText(err), nil)))
	}

	session := Context{
		AccountRef:  ref.AccountRef,
		DropletID:   ref.DropletID,
		CurrentName: droplet.Name,
		Action:      ActionRename,
		SessionID:   uuid.NewString(),
	}
	f.sessions.Set(userID, session)

	markup := keyboard.SingleCancelMarkup(ActionCancel, ref.Params())
	if err := f.msgr.Edit(target, promptText(droplet.Name), markup); err != nil {
		// the user never saw the prompt, so their next text is not a name
		f.sessions.ClearIf(userID, func(c Context) bool { return c.SessionID == session.SessionID })
		f.metrics.RenameEvent("start", "fail")
		logger.Warn(ctx, component, "rename.start", append(attrs,
			slog.String("status", "fail"),
			slog.String("session_id", session.SessionID),
			slog.String("reason", "prompt_failed"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)...)
		return delivery("prompt", err)
	}

	f.metrics.RenameEvent("start", "ok")
	logger.Info(ctx, component, "rename.start", append(attrs,
		slog.String("status", "ok"),
		slog.String("session_id", session.SessionID),
		slog.String("old_name", droplet.Name),
	)...)
	return nil
}

func (f *Flow) lookup(ctx context.Context, ref DropletRef) (digitalocean.Droplet, error) {
	account, err := f.accounts.Get(ctx, ref.AccountRef)
	if err != nil {
		return digitalocean.Droplet{}, err
	}
	return f.provider.Droplet(ctx, account.Token, ref.DropletID)
}

// Submit handles free text from userID. It reports false, without side
// effects, when the user has no pending rename. Otherwise the input is
// claimed: a rejected name keeps the context for another try, while a valid
// name consumes the context before the rename is attempted.
func (f *Flow) Submit(ctx context.Context, userID int64, msg *tele.Message) (bool, error) {
	session, ok := f.sessions.Get(userID)
	if !ok || session.Action != ActionRename {
		return false, nil
	}

	name, err := ValidateName(msg.Text)
	if err != nil {
		f.metrics.RenameEvent("validate", "invalid")
		logger.Info(ctx, component, "rename.invalid",
			slog.String("status", "invalid"),
			slog.String("outcome", "invalid"),
			slog.String("session_id", session.SessionID),
			slog.Int("droplet_id", session.DropletID),
			slog.String("reason", err.Error()),
		)
		_, sendErr := f.msgr.Reply(msg, invalidNameText(err))
		return true, errors.Join(
			&Error{Kind: KindValidation, Op: "validate", Err: err},
			delivery("invalid_name", sendErr),
		)
	}

	// Take is the commit gate: of two concurrent submissions only one gets the context.
	session, ok = f.sessions.Take(userID)
	if !ok {
		f.metrics.RenameEvent("commit", "ignored")
		logger.Info(ctx, component, "rename.commit",
			slog.String("status", "skip"),
			slog.String("outcome", "ignored"),
			slog.String("reason", "already_committing"),
		)
		_, sendErr := f.msgr.Reply(msg, busyText)
		return true, delivery("busy", sendErr)
	}
	return true, f.commit(ctx, session, name, msg)
}

func (f *Flow) commit(ctx context.Context, session Context, name string, msg *tele.Message) error {
	attrs := []slog.Attr{
		slog.String("session_id", session.SessionID),
		slog.String("account_id", session.AccountRef),
		slog.Int("droplet_id", session.DropletID),
		slog.String("old_name", session.CurrentName),
		slog.String("new_name", name),
	}
	fail := func(op string, err error) *Error {
		f.metrics.RenameEvent("commit", "fail")
		failAttrs := append(attrs,
			slog.String("status", "fail"),
			slog.String("outcome", "fail"),
			slog.String("kind", KindCommit.String()),
			slog.String("op", op),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		var apiErr *digitalocean.APIError
		if errors.As(err, &apiErr) {
			failAttrs = append(failAttrs, slog.Int("http_code", apiErr.Status))
		}
		var decErr *digitalocean.DecodeError
		if errors.As(err, &decErr) {
			failAttrs = append(failAttrs, slog.Int("http_code", decErr.Status))
		}
		logger.Warn(ctx, component, "rename.commit", failAttrs...)
		return &Error{Kind: KindCommit, Op: op, Err: err}
	}

	account, err := f.accounts.Get(ctx, session.AccountRef)
	if err != nil {
		flowErr := fail("account", err)
		_, sendErr := f.msgr.Reply(msg, accountFailedText(err))
		return errors.Join(flowErr, delivery("account_failed", sendErr))
	}

	notice, err := f.msgr.Reply(msg, processingText)
	if err != nil {
		return errors.Join(fail("notice", err), delivery("processing", err))
	}

	if err := f.provider.Rename(ctx, account.Token, session.DropletID, name); err != nil {
		flowErr := fail("rename", err)
		return errors.Join(flowErr, delivery("rename_failed", f.msgr.Edit(notice, renameFailedText(err), nil)))
	}

	f.metrics.RenameEvent("commit", "ok")
	logger.Info(ctx, component, "rename.commit", append(attrs,
		slog.String("status", "ok"),
		slog.String("outcome", "ok"),
	)...)
	return delivery("success", f.msgr.Edit(notice, successText(session.CurrentName, name), nil))
}

// Cancel drops the pending rename of userID and reports whether one existed.
func (f *Flow) Cancel(ctx context.Context, userID int64) bool {
	session, existed := f.sessions.Take(userID)
	f.metrics.RenameEvent("cancel", "cancelled")
	logger.Info(ctx, component, "rename.cancel",
		slog.String("status", "cancelled"),
		slog.String("outcome", "cancelled"),
		slog.String("session_id", session.SessionID),
		slog.Bool("existed", existed),
	)
	return existed
}

// Pending returns the stored context of userID, if any.
func (f *Flow) Pending(userID int64) (Context, bool) {
	return f.sessions.Get(userID)
}
