// Package commands describes slash commands registered with the bot.
package commands

import (
	"html"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Command is a slash command with its handler and menu metadata.
// Usage names the arguments, e.g. "<account> <droplet id>".
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	Usage       string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

// HelpLine renders the command as one HTML help line.
func (c Command) HelpLine(name string) string {
	var b strings.Builder
	b.WriteString("<code>")
	b.WriteString(html.EscapeString(name))
	if c.Usage != "" {
		b.WriteByte(' ')
		b.WriteString(html.EscapeString(c.Usage))
	}
	b.WriteString("</code>")
	if c.Description != "" {
		b.WriteString(" - ")
		b.WriteString(html.EscapeString(c.Description))
	}
	return b.String()
}
