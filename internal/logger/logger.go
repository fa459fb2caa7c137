// Package logger provides structured logging for the engine, built on zap
// with optional size-based file rotation.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _ Logger = &loggerImpl{}

type loggerImpl struct {
	log   *zap.Logger
	sugar *zap.SugaredLogger
}

// Logger is the engine-wide structured logging interface.
type Logger interface {
	// Debug logs a message at debug level with optional structured fields.
	Debug(msg string, fields ...zap.Field)
	// Info logs a message at info level with optional structured fields.
	Info(msg string, fields ...zap.Field)
	// Warn logs a message at warn level with optional structured fields.
	Warn(msg string, fields ...zap.Field)
	// Error logs a message at error level with optional structured fields.
	Error(msg string, fields ...zap.Field)
	// Sugar returns the sugared logger for printf-style convenience logging.
	Sugar() *zap.SugaredLogger
	// Named returns a child logger with the given name segment appended.
	Named(name string) Logger
	// Sync flushes any buffered log entries.
	Sync() error
}

// New creates a Logger with the given options applied over the defaults
// (info level, console output, no file output).
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - Logger: the configured logger
func New(opts ...LoggerOption) Logger {
	cfg := &loggerConfig{
		level:   zapcore.InfoLevel,
		console: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var cores []zapcore.Core
	if cfg.console {
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "name",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000"),
			EncodeLevel:      zapcore.CapitalColorLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), cfg.level))
	}
	if cfg.filePath != "" {
		writer := &lumberjack.Logger{
			Filename:   cfg.filePath,
			MaxSize:    cfg.fileMaxSizeMB,
			MaxBackups: cfg.fileMaxBackups,
			MaxAge:     cfg.fileMaxAgeDays,
			Compress:   cfg.fileCompress,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "name",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(writer), cfg.level))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return &loggerImpl{log: log, sugar: log.Sugar()}
}

// ParseLevel converts a textual log level ("debug", "info", "warn", "error")
// into the zap level, defaulting to info for unrecognized values.
//
// Parameters:
//   - level: textual log level
//
// Returns:
//   - zapcore.Level: the parsed level
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.log.Debug(msg, fields...)
}

func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.log.Info(msg, fields...)
}

func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.log.Warn(msg, fields...)
}

func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.log.Error(msg, fields...)
}

func (l *loggerImpl) Sugar() *zap.SugaredLogger {
	return l.sugar
}

func (l *loggerImpl) Named(name string) Logger {
	named := l.log.Named(name)
	return &loggerImpl{log: named, sugar: named.Sugar()}
}

func (l *loggerImpl) Sync() error {
	return l.log.Sync()
}

// Nop returns a logger that discards everything. Useful as a default in
// components that accept an optional logger.
//
// Returns:
//   - Logger: a no-op logger
func Nop() Logger {
	log := zap.NewNop()
	return &loggerImpl{log: log, sugar: log.Sugar()}
}
