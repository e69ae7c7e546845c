package keyboard

import (
	"net/url"

	"github.com/m3rciful/dobot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// InlineBtn describes an inline button whose callback data is action?params.
type InlineBtn struct {
	Text   string
	Action string
	Params url.Values
}

const defaultCancelButtonText = "🔙 Cancel"

func (b InlineBtn) inline() tele.InlineButton {
	return tele.InlineButton{Text: b.Text, Data: callbacks.Encode(b.Action, b.Params)}
}

// InlineButtons builds an inline keyboard where each provided button is placed on its own row.
func InlineButtons(buttons ...InlineBtn) *tele.ReplyMarkup {
	rows := make([][]InlineBtn, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []InlineBtn{b})
	}
	return InlineButtonsRows(rows...)
}

// InlineButtonsRows builds an inline keyboard from rows of InlineBtn.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = btn.inline()
		}
		inline[i] = r
	}
	return &tele.ReplyMarkup{InlineKeyboard: inline}
}

// SingleCancelMarkup creates an inline keyboard with a single cancel button.
// An optional text overrides the default label.
func SingleCancelMarkup(action string, params url.Values, text ...string) *tele.ReplyMarkup {
	label := defaultCancelButtonText
	if len(text) > 0 && text[0] != "" {
		label = text[0]
	}
	return InlineButtons(InlineBtn{Text: label, Action: action, Params: params})
}
