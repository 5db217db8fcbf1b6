package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// Initialize replaces the process-wide logger with a production JSON logger on stderr.
func Initialize(level zap.AtomicLevel) (err error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	Set(log)
	return nil
}

// Set replaces the process-wide logger.
func Set(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	global.Store(log)
}

func Logger() *zap.Logger {
	return global.Load()
}

func Sugar() *zap.SugaredLogger {
	return global.Load().Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = global.Load().Sync()
}
