package logger

import (
	"go.uber.org/zap"
)

// Field constructors so callers do not import zap directly.

func String(key, value string) zap.Field           { return zap.String(key, value) }
func Strings(key string, value []string) zap.Field { return zap.Strings(key, value) }
func Int(key string, value int) zap.Field          { return zap.Int(key, value) }
func Bool(key string, value bool) zap.Field        { return zap.Bool(key, value) }
func Any(key string, value any) zap.Field          { return zap.Any(key, value) }
func Error(err error) zap.Field                    { return zap.Error(err) }
