package helpers

import (
	tele "gopkg.in/telebot.v4"
)

// BotMessenger sends HTML replies and edits through a bot instance.
// Unlike tele.Context helpers it returns the sent message so callers can edit it later.
type BotMessenger struct {
	Bot *tele.Bot
}

// Reply sends text as a reply to msg.
func (m BotMessenger) Reply(to *tele.Message, text string) (*tele.Message, error) {
	return m.Bot.Reply(to, text, HTMLOptions())
}

// Edit replaces the text and inline keyboard of msg.
func (m BotMessenger) Edit(msg tele.Editable, text string, markup *tele.ReplyMarkup) error {
	_, err := m.Bot.Edit(msg, text, HTMLOptions(markup))
	return err
}
