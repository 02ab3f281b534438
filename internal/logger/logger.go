package logger

import (
	"context"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// default logger instance
	defaultLogger atomic.Pointer[zap.SugaredLogger]
)

// initializes the logger based on environment
func init() {
	defaultLogger.Store(build(os.Getenv("ENVIRONMENT"), ""))
}

// rebuilds the default logger once configuration is known.
// a non-empty filePath adds a rotated JSON file sink next to the console.
func Init(environment, filePath string) {
	defaultLogger.Store(build(environment, filePath))
}

func build(environment, filePath string) *zap.SugaredLogger {
	isProduction := environment == "production"

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var consoleEncoder zapcore.Encoder
	level := zap.DebugLevel

	if isProduction {
		// production: JSON output for structured logging
		consoleEncoder = zapcore.NewJSONEncoder(fileEncoderConfig)
		level = zap.InfoLevel
	} else {
		// development: human-readable console output
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	if filePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			zapcore.AddSync(rotator),
			zap.InfoLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// returns the default logger instance
func Default() *zap.SugaredLogger {
	return defaultLogger.Load().WithOptions(zap.AddCallerSkip(-1))
}

// creates a logger with additional context fields
func With(args ...any) *zap.SugaredLogger {
	return Default().With(args...)
}

// creates a logger with context
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return Default()
	}

	// extract any logger from context if present
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}

	return Default()
}

// adds logger to context
func WithContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// helper type for context key
type loggerKey struct{}

// flushes buffered entries, call before exit
func Sync() {
	_ = defaultLogger.Load().Sync() //nolint:errcheck // stderr sync fails on some terminals
}

// convenience functions for common log levels

// logs a debug message
func Debug(msg string, args ...any) {
	defaultLogger.Load().Debugw(msg, args...)
}

// logs an info message
func Info(msg string, args ...any) {
	defaultLogger.Load().Infow(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	defaultLogger.Load().Warnw(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	defaultLogger.Load().Errorw(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Load().Errorw(msg, args...)
}

// logs a fatal error and exits (for CLI tools)
func Fatal(msg string, args ...any) {
	defaultLogger.Load().Fatalw(msg, args...)
}

// logs a fatal error with error and exits (for CLI tools)
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Load().Fatalw(msg, args...)
}
