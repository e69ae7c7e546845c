package format

import (
	"html"
	"strings"
)

// Escape makes s safe for Telegram HTML parse mode.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Code wraps escaped s into an inline code span.
func Code(s string) string {
	return "<code>" + html.EscapeString(s) + "</code>"
}

// Bold wraps escaped s into a bold span.
func Bold(s string) string {
	return "<b>" + html.EscapeString(s) + "</b>"
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Lines joins non-empty paragraphs with a blank line between them.
func Lines(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
