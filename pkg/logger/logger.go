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
	atom zap.AtomicLevel

	buildLogger = func(cfg zap.Config) (*zap.Logger, error) {
		return cfg.Build(zap.AddCallerSkip(1))
	}
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	ActorIDKey   ContextKey = "actor_id"
)

// Init initializes the logger
func Init(env, level string) {
	once.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		if level != "" {
			if lvl, err := zapcore.ParseLevel(level); err == nil {
				config.Level = zap.NewAtomicLevelAt(lvl)
			}
		}

		var err error
		log, err = buildLogger(config)
		if err != nil {
			panic(err)
		}
		atom = config.Level
	})
}

// GetLogger returns the underlying zap logger, a no-op one before Init
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// SetLevel changes the level at runtime
func SetLevel(level zapcore.Level) {
	if log != nil {
		atom.SetLevel(level)
	}
}

// Sync flushes buffered entries
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// WithContext adds context fields (request_id, actor_id) to the logger
func WithContext(ctx context.Context) *zap.Logger {
	l := GetLogger()
	if ctx == nil {
		return l
	}

	var fields []zap.Field
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if actorID, ok := ctx.Value(ActorIDKey).(string); ok && actorID != "" {
		fields = append(fields, zap.String("actor_id", actorID))
	}

	if len(fields) > 0 {
		return l.With(fields...)
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

// LogRequest logs an HTTP request details
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	l := WithContext(ctx)
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	}
	if status >= 500 {
		l.Error("HTTP Request", fields...)
		return
	}
	l.Info("HTTP Request", fields...)
}
