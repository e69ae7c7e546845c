package logger

import (
	"slices"
	"strings"
)

// Level names as they appear in the "level" field.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

// Statuses describe how a step ended; outcomes describe what it meant for the user.
// Unknown outcomes are dropped from records, unknown statuses are kept lowercased.
var (
	knownStatuses = []string{"ok", "fail", "skip", "retry", "rate_limited", "cancelled", "invalid"}
	knownOutcomes = []string{"ok", "invalid", "ignored", "fail", "cancelled", "rate_limited"}
)

func normalizeLevel(level string) string {
	switch strings.ToLower(level) {
	case "":
		return LevelInfo
	case "warning":
		return LevelWarn
	}
	// slog renders custom levels as e.g. "ERROR+4"
	if strings.HasPrefix(level, "ERROR+") {
		return LevelFatal
	}
	return strings.ToUpper(level)
}

func normalizeEnum(v string, known []string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	return v, v != "" && slices.Contains(known, v)
}

func normalizeStatus(status string) (string, bool) {
	return normalizeEnum(status, knownStatuses)
}

func normalizeOutcome(outcome string) (string, bool) {
	return normalizeEnum(outcome, knownOutcomes)
}

// defaultKeyOrder puts identity first, then update metadata, then domain fields.
// Keys not listed follow in alphabetical order.
var defaultKeyOrder = []string{
	"ts", "level", "component", "event", "status",
	"rid", "rid_full", "ts_unix_nano",
	"update_id", "user_id", "chat_id", "chat_type",
	"handler", "cb_key", "outcome", "kind", "op",
	"duration_ms", "messages", "kb",
	"session_id", "account_id", "droplet_id", "old_name", "new_name", "http_code", "existed",
	"payload", "lang", "username", "method", "attempt",
	"mode", "listen", "public_url",
	"db", "host", "port", "version", "applied",
	"err", "err_code", "cause", "attempts",
}
