package rename

import (
	"errors"
	"log/slog"

	"github.com/m3rciful/dobot/core/logger"
	tg "github.com/m3rciful/dobot/core/telegram"
	tghelpers "github.com/m3rciful/dobot/core/telegram/helpers"
	"github.com/m3rciful/dobot/core/telegram/middleware"
	"github.com/m3rciful/dobot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// Register binds the start and cancel buttons in reg.
func (f *Flow) Register(reg *tg.Registry) error {
	if err := reg.RegisterCallback(ActionStart, f.HandleStart); err != nil {
		return err
	}
	return reg.RegisterCallback(ActionCancel, f.HandleCancel)
}

// Claimer exposes HandleText to the text router.
func (f *Flow) Claimer() router.Claimer {
	return router.Claimer{Name: "rename", Claim: f.HandleText}
}

// HandleStart answers the Rename button.
func (f *Flow) HandleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user, cb := c.Sender(), c.Callback()
	if user == nil || cb == nil {
		return nil
	}
	ref, err := RefFromCallback(c)
	if err != nil {
		logger.Warn(ctx, component, "rename.start",
			slog.String("status", "fail"),
			slog.String("reason", "bad_payload"),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendHTML(c, badPayloadAlert)
	}
	if cb.Message == nil {
		return tghelpers.SendHTML(c, noMessageAlert)
	}
	return deliveryOnly(f.bound(c).Start(ctx, user.ID, cb.Message, ref))
}

// HandleText feeds a text message into a pending rename and reports whether it was consumed.
func (f *Flow) HandleText(c tele.Context) (bool, error) {
	user, msg := c.Sender(), c.Message()
	if user == nil || msg == nil {
		return false, nil
	}
	claimed, err := f.bound(c).Submit(tghelpers.BuildContext(c), user.ID, msg)
	return claimed, deliveryOnly(err)
}

// HandleCancel answers the Cancel button: it drops any pending rename and
// shows the droplet detail screen again.
func (f *Flow) HandleCancel(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user := c.Sender()
	if user == nil {
		return nil
	}
	ref, err := RefFromCallback(c)
	if err != nil {
		f.Cancel(ctx, user.ID)
		logger.Warn(ctx, component, "rename.cancel",
			slog.String("status", "fail"),
			slog.String("reason", "bad_payload"),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendHTML(c, badPayloadAlert)
	}
	f.Cancel(ctx, user.ID)
	return f.detail.Show(c, ref)
}

// bound returns a copy of f whose deliveries count toward the handler summary of c.
func (f *Flow) bound(c tele.Context) *Flow {
	cp := *f
	cp.msgr = countingMessenger{Messenger: f.msgr, c: c}
	return &cp
}

type countingMessenger struct {
	Messenger
	c tele.Context
}

func (m countingMessenger) Reply(to *tele.Message, text string) (*tele.Message, error) {
	msg, err := m.Messenger.Reply(to, text)
	if err == nil {
		middleware.CountDelivery(m.c, false)
	}
	return msg, err
}

func (m countingMessenger) Edit(msg tele.Editable, text string, markup *tele.ReplyMarkup) error {
	err := m.Messenger.Edit(msg, text, markup)
	if err == nil {
		middleware.CountDelivery(m.c, markup != nil)
	}
	return err
}

// deliveryOnly keeps err only when a message could not be delivered.
// Flow outcomes are already logged and shown to the user.
func deliveryOnly(err error) error {
	var de *DeliveryError
	if errors.As(err, &de) {
		return err
	}
	return nil
}
