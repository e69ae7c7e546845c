package logger

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, format logFormat) (*slog.Logger, func() string) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	drain := func() string {
		require.NoError(t, aw.Flush())
		require.NoError(t, aw.Close())
		return strings.TrimSpace(buf.String())
	}
	return slog.New(h), drain
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	log, drain := newTestLogger(t, formatKV)
	ctx := WithRID(WithUpdateMeta(t.Context(), 42, 7, 9), "rid-123")

	LogEvent(ctx, log.With("component", "flow.rename"), slog.LevelInfo, "rename.commit",
		slog.String("status", "ok"),
		slog.Int("droplet_id", 1001),
	)

	tokens := strings.Split(drain(), " ")
	expected := []string{"ts=", "level=INFO", "component=flow.rename", "event=rename.commit", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "droplet_id=1001"}
	require.GreaterOrEqual(t, len(tokens), len(expected))
	for i, prefix := range expected {
		assert.True(t, strings.HasPrefix(tokens[i], prefix), "token %d = %s, expected prefix %s", i, tokens[i], prefix)
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	log, drain := newTestLogger(t, formatJSON)
	ctx := WithRID(t.Context(), "rid-json")

	LogEvent(ctx, log.With("component", "do"), slog.LevelError, "droplet.rename",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
	)

	line := drain()
	require.True(t, strings.HasPrefix(line, "{"), line)
	pos := -1
	for _, pref := range []string{`{"ts":`, `"level":"ERROR"`, `"component":"do"`, `"event":"droplet.rename"`, `"status":"fail"`, `"rid":"rid-json"`, `"err":"boom"`} {
		idx := strings.Index(line, pref)
		require.Greater(t, idx, pos, "prefix %s out of order in %s", pref, line)
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	t.Run("kv omits full rid", func(t *testing.T) {
		log, drain := newTestLogger(t, formatKV)
		LogEvent(WithRID(t.Context(), "123:456:789"), log, slog.LevelInfo, "rid.test")
		line := drain()
		assert.Contains(t, line, "rid="+CompactRID("123:456:789"))
		assert.NotContains(t, line, "rid_full=")
	})
	t.Run("json keeps full rid", func(t *testing.T) {
		log, drain := newTestLogger(t, formatJSON)
		LogEvent(WithRID(t.Context(), "12:34:56"), log, slog.LevelInfo, "rid.test")
		line := drain()
		assert.Contains(t, line, `"rid":"`+CompactRID("12:34:56")+`"`)
		assert.Contains(t, line, `"rid_full":"12:34:56"`)
		assert.Contains(t, line, `"ts_unix_nano"`)
	})
}

func TestStructuredHandlerNormalizesDurationsAndOutcome(t *testing.T) {
	log, drain := newTestLogger(t, formatKV)
	LogEvent(t.Context(), log, slog.LevelInfo, "handler.handled",
		slog.Duration("duration", 1500*time.Microsecond),
		slog.Duration("api_duration", 2*time.Second),
		slog.String("outcome", "bogus"),
		slog.String("empty", " "),
	)
	line := drain()
	assert.Contains(t, line, "duration_ms=2")
	assert.Contains(t, line, "api_duration_ms=2000")
	assert.NotContains(t, line, "outcome=")
	assert.NotContains(t, line, "empty=")
}

func TestCompactRID(t *testing.T) {
	assert.Equal(t, "a.b.c", CompactRID("10:11:12"))
	assert.Equal(t, "not-a-rid", CompactRID("not-a-rid"))
	assert.Equal(t, "1:x:2", CompactRID("1:x:2"))
}

func TestSanitizeLimit(t *testing.T) {
	assert.Equal(t, "abc", SanitizeLimit("a\x00b​c", 10))
	assert.Equal(t, "wéb", SanitizeLimit("wéb-01", 3))
	assert.Empty(t, SanitizeLimit("anything", 0))
}

func TestStructuredHandlerRedactsCredentials(t *testing.T) {
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	log := slog.New(newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: aw,
		format: formatKV,
		redact: newRedactor(),
	}))

	log.Info("account.loaded",
		slog.String("token", "dop_v1_abcdef"),
		slog.String("note", "uses dop_v1_abcdef"),
		slog.String("account_id", "main"),
	)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())

	line := buf.String()
	assert.NotContains(t, line, "dop_v1_abcdef")
	assert.Contains(t, line, "account_id=main")
}
