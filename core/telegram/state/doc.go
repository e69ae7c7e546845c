// Package state keeps per-user conversation state for Telegram bots.
// It is domain-agnostic: callers choose the value type stored per user.
package state
