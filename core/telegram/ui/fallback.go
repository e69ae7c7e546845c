package ui

import (
	tghelpers "github.com/m3rciful/dobot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// FallbackProvider exposes handlers used when incoming updates
// cannot be mapped to commands, callbacks, or a waiting conversation.
type FallbackProvider interface {
	UnknownText() tele.HandlerFunc
	UnknownCallback() tele.HandlerFunc
}

// Fallbacks answers unmatched updates with fixed texts.
type Fallbacks struct {
	// Text is sent as HTML in reply to unmatched messages. Empty ignores them.
	Text string
	// CallbackAlert is shown as a callback toast for unknown buttons.
	CallbackAlert string
}

var _ FallbackProvider = Fallbacks{}

func (f Fallbacks) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		if f.Text == "" {
			return nil
		}
		return tghelpers.ReplyHTML(c, f.Text)
	}
}

func (f Fallbacks) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		text := f.CallbackAlert
		if text == "" {
			text = "This button is no longer supported"
		}
		return c.Respond(&tele.CallbackResponse{Text: text})
	}
}
