// Package logger wraps a zap SugaredLogger with key-based redaction so that
// credentials and personal data never reach the log sink.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
	redact        *redactor
}

type Option func(*options)

type options struct {
	level     string
	redact    bool
	hashSalt  string
	zapOption []zap.Option
}

// WithLevel overrides the mode's default level ("debug", "info", "warn", "error").
func WithLevel(level string) Option {
	return func(o *options) { o.level = strings.TrimSpace(level) }
}

// WithRedaction toggles field redaction. Hashed fields are salted with salt.
func WithRedaction(enabled bool, salt string) Option {
	return func(o *options) {
		o.redact = enabled
		o.hashSalt = strings.TrimSpace(salt)
	}
}

// WithZapOptions passes options through to the underlying zap logger.
func WithZapOptions(zopts ...zap.Option) Option {
	return func(o *options) { o.zapOption = append(o.zapOption, zopts...) }
}

// New builds a logger for the given mode: "production"/"prod" emits JSON,
// "test" discards everything, anything else uses the development encoder.
// Redaction is on unless disabled with WithRedaction.
func New(mode string, opts ...Option) (*Logger, error) {
	o := options{redact: true}
	for _, opt := range opts {
		opt(&o)
	}

	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "test":
		return &Logger{SugaredLogger: zap.NewNop().Sugar(), redact: newRedactor(o)}, nil
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if o.level != "" {
		lvl, err := zapcore.ParseLevel(o.level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", o.level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	zapLogger, err := cfg.Build(o.zapOption...)
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar(), redact: newRedactor(o)}, nil
}

// FromZap wraps an existing zap logger, e.g. an observer core in tests.
func FromZap(z *zap.Logger, opts ...Option) *Logger {
	o := options{redact: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Logger{SugaredLogger: z.Sugar(), redact: newRedactor(o)}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, l.redact.kvs(keysAndValues)...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, l.redact.kvs(keysAndValues)...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, l.redact.kvs(keysAndValues)...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, l.redact.kvs(keysAndValues)...)
}

func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Fatalw(msg, l.redact.kvs(keysAndValues)...)
}

// With returns a child logger carrying the given fields on every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(l.redact.kvs(keysAndValues)...), redact: l.redact}
}

// Printf lets the logger stand in for the GORM and stdlib loggers.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.SugaredLogger.Warnf(strings.TrimSpace(format), args...)
}
