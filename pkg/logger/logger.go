package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// CanonicalLogger is the zap logger shared by every relay component.
type CanonicalLogger struct {
	l *zap.Logger
}

// NewLoggerFromEnv builds a logger from the environment.
//
// LOG_FORMAT selects the encoder: "console" or "development" for human-readable output,
// anything else (default "json") for structured JSON. LOG_LEVEL sets the minimum level
// (debug, info, warn, error); the monitoring client logs its requests at debug.
func NewLoggerFromEnv(component string) (*CanonicalLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "console", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := zap.ParseAtomicLevel(lvl)
		if err != nil {
			return nil, err
		}
		cfg.Level = level
	}

	l, err := cfg.Build(
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("component", component)),
	)
	if err != nil {
		return nil, err
	}
	return &CanonicalLogger{l: l}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *CanonicalLogger {
	return &CanonicalLogger{l: zap.NewNop()}
}

func (c *CanonicalLogger) Sync() {
	_ = c.l.Sync()
}

func (c *CanonicalLogger) Debug(msg string, fields ...zap.Field) { c.l.Debug(msg, fields...) }
func (c *CanonicalLogger) Info(msg string, fields ...zap.Field)  { c.l.Info(msg, fields...) }
func (c *CanonicalLogger) Warn(msg string, fields ...zap.Field)  { c.l.Warn(msg, fields...) }
func (c *CanonicalLogger) Error(msg string, fields ...zap.Field) { c.l.Error(msg, fields...) }
func (c *CanonicalLogger) Fatal(msg string, fields ...zap.Field) { c.l.Fatal(msg, fields...) }

func (c *CanonicalLogger) with(fields ...zap.Field) *CanonicalLogger {
	return &CanonicalLogger{l: c.l.With(fields...)}
}

func (c *CanonicalLogger) WithError(err error) *CanonicalLogger {
	return c.with(zap.Error(err))
}

// WithRoom scopes the logger to one chat destination.
func (c *CanonicalLogger) WithRoom(room string) *CanonicalLogger {
	return c.with(zap.String(FieldRoom, room))
}

// Component overrides the component field, e.g. "sensu-client" or "chat-webhook".
func (c *CanonicalLogger) Component(name string) *CanonicalLogger {
	return c.with(zap.String("component", name))
}

func (c *CanonicalLogger) HTTPError(method, path string, status int, err error) {
	c.l.Error("http_error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Error(err),
	)
}
