package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	coreconfig "github.com/m3rciful/dobot/core/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultSampleNum = 1
	defaultSampleDen = 50

	logFileMaxMB   = 50
	logFileBackups = 5
)

// options is the resolved form of coreconfig.LoggingConfig.
type options struct {
	level     slog.Level
	format    logFormat
	keyOrder  []string
	sampleNum int
	sampleDen int
	trace     bool
	profile   string
	dir       string
	file      string
}

func optionsFrom(cfg *coreconfig.Config) options {
	o := options{
		level:     slog.LevelInfo,
		format:    formatJSON,
		keyOrder:  append([]string(nil), defaultKeyOrder...),
		sampleNum: defaultSampleNum,
		sampleDen: defaultSampleDen,
		trace:     envTruthy("TRACE") || envTruthy("LOG_TRACE"),
		profile:   "prod",
	}
	if cfg == nil {
		return o
	}
	lc := cfg.Logging

	if p := strings.ToLower(strings.TrimSpace(lc.Profile)); p != "" {
		o.profile = p
	}
	switch strings.ToLower(strings.TrimSpace(lc.Level)) {
	case "debug":
		o.level = slog.LevelDebug
	case "warn", "warning":
		o.level = slog.LevelWarn
	case "error":
		o.level = slog.LevelError
	}
	switch strings.ToLower(strings.TrimSpace(lc.Format)) {
	case "kv", "text", "pretty":
		o.format = formatKV
	case "json":
	default:
		if o.profile == "debug" || o.profile == "dev" {
			o.format = formatKV
		}
	}
	if order := splitKeys(lc.KeysOrder); len(order) > 0 {
		o.keyOrder = order
	}
	if spec := strings.TrimSpace(lc.DebugSample); spec != "" {
		num, den := parseRatioSpec(spec)
		switch {
		case num == 0 && den == 0:
			o.sampleNum, o.sampleDen = 0, 0
		case num > 0 && den > 0:
			o.sampleNum, o.sampleDen = num, den
		}
	}
	o.dir = strings.TrimSpace(lc.Dir)
	o.file = strings.TrimSpace(lc.BotFile)
	return o
}

func splitKeys(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "default" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// outputs returns stdout plus the optional rotating log file.
// A directory error falls back to stdout only; the logger is not up yet,
// so it goes to the std log.
func (o options) outputs() ([]io.Writer, []io.Closer) {
	writers := []io.Writer{os.Stdout}
	if o.dir == "" || o.file == "" {
		return writers, nil
	}
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		log.Printf("logger: create log dir %s: %v", o.dir, err)
		return writers, nil
	}
	f := &lumberjack.Logger{
		Filename:   filepath.Join(o.dir, o.file),
		MaxSize:    logFileMaxMB,
		MaxBackups: logFileBackups,
		Compress:   true,
	}
	return append(writers, f), []io.Closer{f}
}

func envTruthy(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
