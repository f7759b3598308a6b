package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

type ContextKey string

// RequestIDKey is the context key carrying the request id
const RequestIDKey ContextKey = "request_id"

// Init initializes the logger
func Init(env string) {
	once.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		var err error
		log, err = config.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	})
}

// GetLogger returns the underlying zap logger
func GetLogger() *zap.Logger {
	return log
}

// WithContext adds the request id from the context to the logger
func WithContext(ctx context.Context) *zap.Logger {
	l := log
	if l == nil {
		l = zap.NewNop()
	}
	if ctx == nil {
		return l
	}
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return l.With(zap.String("request_id", reqID))
	}
	return l
}

// Info logs a message at InfoLevel
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Warn(msg, fields...)
}

// LogRequest logs HTTP request details
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	WithContext(ctx).Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	)
}
