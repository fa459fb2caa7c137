package logger

import "go.uber.org/zap/zapcore"

type loggerConfig struct {
	level          zapcore.Level
	console        bool
	filePath       string
	fileMaxSizeMB  int
	fileMaxBackups int
	fileMaxAgeDays int
	fileCompress   bool
}

// LoggerOption is a functional option used to configure a Logger during construction.
type LoggerOption func(*loggerConfig)

// WithLevel sets the minimum level that will be logged.
//
// Parameters:
//   - level: the minimum zap level
//
// Returns:
//   - LoggerOption: a function that sets the level
func WithLevel(level zapcore.Level) LoggerOption {
	return func(c *loggerConfig) {
		c.level = level
	}
}

// WithConsole enables or disables console output. Console output is on by
// default; tests typically turn it off.
//
// Parameters:
//   - enabled: whether to log to stdout
//
// Returns:
//   - LoggerOption: a function that toggles console output
func WithConsole(enabled bool) LoggerOption {
	return func(c *loggerConfig) {
		c.console = enabled
	}
}

// WithFile enables rotating file output at the given path with default
// rotation settings (50 MB per file, 3 backups, 7 days, compressed).
//
// Parameters:
//   - path: log file path
//
// Returns:
//   - LoggerOption: a function that enables file output
func WithFile(path string) LoggerOption {
	return func(c *loggerConfig) {
		c.filePath = path
		c.fileMaxSizeMB = 50
		c.fileMaxBackups = 3
		c.fileMaxAgeDays = 7
		c.fileCompress = true
	}
}

// WithFileRotation overrides the rotation settings for file output. Only
// meaningful together with WithFile.
//
// Parameters:
//   - maxSizeMB: maximum size of a log file before rotation, in megabytes
//   - maxBackups: maximum number of rotated files to keep
//   - maxAgeDays: maximum age of a rotated file, in days
//   - compress: whether rotated files are gzip-compressed
//
// Returns:
//   - LoggerOption: a function that sets the rotation policy
func WithFileRotation(maxSizeMB, maxBackups, maxAgeDays int, compress bool) LoggerOption {
	return func(c *loggerConfig) {
		c.fileMaxSizeMB = maxSizeMB
		c.fileMaxBackups = maxBackups
		c.fileMaxAgeDays = maxAgeDays
		c.fileCompress = compress
	}
}
