package helpers

import (
	tele "gopkg.in/telebot.v4"
)

func htmlOpts(markup []*tele.ReplyMarkup) *tele.SendOptions {
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
	if len(markup) > 0 {
		opts.ReplyMarkup = markup[0]
	}
	return opts
}

// SendHTML sends a message with HTML parse mode and optional reply markup.
func SendHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.Send(text, htmlOpts(markup))
}

// ReplyHTML replies to the current message with HTML parse mode.
func ReplyHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.Reply(text, htmlOpts(markup))
}

// EditOrSendHTML tries to edit the message (HTML) or sends a new one if edit fails.
func EditOrSendHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.EditOrSend(text, htmlOpts(markup))
}

// HTMLOptions exposes the shared HTML send options for direct bot calls.
func HTMLOptions(markup ...*tele.ReplyMarkup) *tele.SendOptions {
	return htmlOpts(markup)
}
