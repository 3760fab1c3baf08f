package logger

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

//nolint:gochecknoglobals // Package-level logger state is intentional: one logger per process.
var (
	globalLogger atomic.Pointer[zap.Logger]
	globalLevel  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

//nolint:gochecknoinits // The package must be usable before any explicit configuration happens.
func init() {
	globalLogger.Store(New(globalLevel))
}

// New creates a console logger writing to stderr at the given level.
// A nil level falls back to the package-wide atomic level.
func New(level zapcore.LevelEnabler) *zap.Logger {
	if level == nil {
		level = globalLevel
	}

	return zap.New(zapcore.NewCore(newConsoleEncoder(), zapcore.Lock(os.Stderr), level))
}

// NewWithRotatingFile creates a logger that writes to stderr and to a
// size-rotated log file at the given path.
func NewWithRotatingFile(level zapcore.LevelEnabler, path string) *zap.Logger {
	if level == nil {
		level = globalLevel
	}

	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	core := zapcore.NewTee(
		zapcore.NewCore(newConsoleEncoder(), zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), fileSink, level),
	)

	return zap.New(core)
}

func newConsoleEncoder() zapcore.Encoder {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return zapcore.NewConsoleEncoder(encoderConfig)
}

// Logger returns the current process-wide logger.
func Logger() *zap.Logger {
	return globalLogger.Load()
}

// SetLogger replaces the process-wide logger.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}

	globalLogger.Store(logger)
}

// Level returns the current logging level.
func Level() zapcore.Level {
	return globalLevel.Level()
}

// SetLevel changes the logging level for all loggers built on the package-wide atomic level.
func SetLevel(level zapcore.Level) {
	globalLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug logging is enabled.
func IsDebugLevel() bool {
	return Level() <= zapcore.DebugLevel
}

// ParseLogLevel converts a string into a zap level.
// The second return value is false if the string is not a known level,
// in which case InfoLevel is returned.
func ParseLogLevel(level string) (zapcore.Level, bool) {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel, false
	}

	return parsed, true
}

func sugaredFromContext(_ context.Context) *zap.SugaredLogger {
	// Context is accepted for call-site uniformity and future request-scoped loggers.
	return Logger().Sugar()
}

// Debug logs a message at debug level.
func Debug(ctx context.Context, args ...any) {
	sugaredFromContext(ctx).Debug(args...)
}

// Debugf logs a formatted message at debug level.
func Debugf(ctx context.Context, format string, args ...any) {
	sugaredFromContext(ctx).Debugf(format, args...)
}

// DebugKV logs a message with key-value pairs at debug level.
func DebugKV(ctx context.Context, message string, kvs ...any) {
	sugaredFromContext(ctx).Debugw(message, kvs...)
}

// Info logs a message at info level.
func Info(ctx context.Context, args ...any) {
	sugaredFromContext(ctx).Info(args...)
}

// Infof logs a formatted message at info level.
func Infof(ctx context.Context, format string, args ...any) {
	sugaredFromContext(ctx).Infof(format, args...)
}

// InfoKV logs a message with key-value pairs at info level.
func InfoKV(ctx context.Context, message string, kvs ...any) {
	sugaredFromContext(ctx).Infow(message, kvs...)
}

// Warn logs a message at warn level.
func Warn(ctx context.Context, args ...any) {
	sugaredFromContext(ctx).Warn(args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(ctx context.Context, format string, args ...any) {
	sugaredFromContext(ctx).Warnf(format, args...)
}

// WarnKV logs a message with key-value pairs at warn level.
func WarnKV(ctx context.Context, message string, kvs ...any) {
	sugaredFromContext(ctx).Warnw(message, kvs...)
}

// Error logs a message at error level.
func Error(ctx context.Context, args ...any) {
	sugaredFromContext(ctx).Error(args...)
}

// Errorf logs a formatted message at error level.
func Errorf(ctx context.Context, format string, args ...any) {
	sugaredFromContext(ctx).Errorf(format, args...)
}

// ErrorKV logs a message with key-value pairs at error level.
func ErrorKV(ctx context.Context, message string, kvs ...any) {
	sugaredFromContext(ctx).Errorw(message, kvs...)
}

// Fatalf logs a formatted message at fatal level and exits the process.
func Fatalf(ctx context.Context, format string, args ...any) {
	sugaredFromContext(ctx).Fatalf(format, args...)
}
