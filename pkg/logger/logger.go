package logger

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wonny/vctrank/pkg/config"
)

// Logger wraps zerolog with the field helpers the pipeline uses
// (player / league / stage / run_id context per stage and per player)
// ⭐ SSOT: 모든 로깅은 이 패키지를 통해서만 수행
type Logger struct {
	zlog zerolog.Logger
}

// New creates the CLI logger. Logs go to stderr so stdout stays the
// command's report output.
func New(cfg *config.Config) *Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger writing to out.
// LOG_FORMAT console|pretty selects the human-readable writer, anything else JSON.
func NewWithWriter(cfg *config.Config, out io.Writer) *Logger {
	switch strings.ToLower(cfg.LogFormat) {
	case "console", "pretty":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	// 레벨은 인스턴스 단위 (전역 레벨을 건드리지 않음)
	zlog := zerolog.New(out).
		Level(parseLevel(cfg.LogLevel)).
		With().
		Timestamp().
		Str("env", cfg.Env).
		Logger()

	return &Logger{zlog: zlog}
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// parseLevel accepts zerolog level names plus "warning"; unknown → info
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return level
}

func (l *Logger) Debug(msg string) { l.zlog.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zlog.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zlog.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zlog.Error().Msg(msg) }

// WithField returns a child logger carrying one field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zlog: l.zlog.With().Interface(key, value).Logger()}
}

// WithFields returns a child logger carrying fields in key order,
// so the same call always renders the same line
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx := l.zlog.With()
	for _, k := range keys {
		ctx = ctx.Interface(k, fields[k])
	}
	return &Logger{zlog: ctx.Logger()}
}

// WithError returns a child logger carrying err; nil adds nothing
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{zlog: l.zlog.With().Err(err).Logger()}
}
