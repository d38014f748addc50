// Package logging builds the file logger. The terminal belongs to the UI, so
// nothing is ever written to stdout or stderr; logs go to a rotated file.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 2
	maxAgeDays = 14
)

// New returns a logger writing to path at the named level. An empty path
// disables logging entirely.
func New(path, level string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}),
		parsed,
	)

	return zap.New(core)
}
