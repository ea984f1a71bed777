package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// OptimizedLogger gates field building on the level of the underlying core,
// so disabled debug logs cost no allocations.
type OptimizedLogger struct {
	logger *zap.Logger
}

func NewOptimizedLogger(l *zap.Logger) *OptimizedLogger {
	return &OptimizedLogger{logger: l}
}

// ShouldLog reports whether level is enabled on the underlying core.
func (ol *OptimizedLogger) ShouldLog(level zapcore.Level) bool {
	return ol.logger.Core().Enabled(level)
}

func write(l *zap.Logger, level zapcore.Level, message string, fields []zap.Field) {
	switch level {
	case zapcore.DebugLevel:
		l.Debug(message, fields...)
	case zapcore.InfoLevel:
		l.Info(message, fields...)
	case zapcore.WarnLevel:
		l.Warn(message, fields...)
	case zapcore.ErrorLevel:
		l.Error(message, fields...)
	}
}

// Global optimized logger instance
var optimizedLogger *OptimizedLogger

// GetOptimizedLogger returns the builder backend, falling back to a no-op
// logger before InitLogger or SetLogger has run.
func GetOptimizedLogger() *OptimizedLogger {
	if optimizedLogger == nil {
		return NewOptimizedLogger(GetLogger())
	}
	return optimizedLogger
}
