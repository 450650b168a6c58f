package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger instance used across the engine. It starts as a
// no-op logger so library code can log before Init runs.
var Log = zap.NewNop()

var initialized bool

// Init sets up the global logger. Safe to call more than once.
func Init() {
	if initialized {
		return
	}
	initialized = true

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var err error
	Log, err = config.Build()
	if err != nil {
		// Fall back to a no-op logger rather than panicking inside the engine
		Log = zap.NewNop()
	}
}
