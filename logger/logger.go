// Package logger - Structured logging for the annotation pipeline.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with key/value helpers.
type Logger struct {
	*zap.Logger
}

// Config selects the level, encoding and destination of log output.
type Config struct {
	// Level is a zap level name; unknown names fall back to info.
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
	// Output is "stdout", "stderr" or a file path.
	Output string `yaml:"output"`
}

// DefaultConfig returns console logging at info level on stdout.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console", Output: "stdout"}
}

// New builds a logger from configuration.
//
// Arguments:
//   - cfg: The logging configuration.
//
// Returns:
//   - *Logger: The logger.
//   - error: An error if the output could not be opened.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	var ec zapcore.EncoderConfig
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
		ec = zap.NewProductionEncoderConfig()
		zc.Encoding = "json"
	} else {
		zc = zap.NewDevelopmentConfig()
		ec = zap.NewDevelopmentEncoderConfig()
		zc.Encoding = "console"
	}
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	zc.EncoderConfig = ec
	zc.Level = zap.NewAtomicLevelAt(level)

	zc.OutputPaths = []string{"stdout"}
	if cfg.Output != "" {
		zc.OutputPaths = []string{cfg.Output}
		zc.ErrorOutputPaths = []string{cfg.Output}
	}

	z, err := zc.Build(zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, err
	}
	return &Logger{z}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zap.NewNop()}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.Logger.Sync()
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{l.Logger.With(fields(kv...)...)}
}

// Debug logs at debug level with key/value pairs.
func (l *Logger) Debug(msg string, kv ...any) {
	l.Logger.Debug(msg, fields(kv...)...)
}

// Info logs at info level with key/value pairs.
func (l *Logger) Info(msg string, kv ...any) {
	l.Logger.Info(msg, fields(kv...)...)
}

// Warn logs at warn level with key/value pairs.
func (l *Logger) Warn(msg string, kv ...any) {
	l.Logger.Warn(msg, fields(kv...)...)
}

// Error logs at error level with key/value pairs.
func (l *Logger) Error(msg string, kv ...any) {
	l.Logger.Error(msg, fields(kv...)...)
}

// fields turns alternating keys and values into zap fields. Pairs with a
// non-string key are skipped; error values are logged with zap.Error.
func fields(kv ...any) []zap.Field {
	out := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if err, isErr := kv[i+1].(error); isErr {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, kv[i+1]))
	}
	return out
}
