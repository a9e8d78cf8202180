package logger

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// contextKey namespaces the values this package stores in a context.Context.
type contextKey string

const (
	CommandIDKey     contextKey = "command_id"
	CorrelationIDKey contextKey = "correlation_id"
)

// Logger wraps a zerolog.Logger with engine-domain convenience methods.
type Logger struct {
	*zerolog.Logger
}

// Config controls how a Logger renders output.
type Config struct {
	Level      string
	Pretty     bool
	TimeFormat string
}

// New builds a Logger from cfg. An unrecognized Level falls back to info.
func New(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	var zl zerolog.Logger
	if cfg.Pretty {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		zl = zerolog.New(output).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return &Logger{&zl}
}

// NewDefault returns an info-level, non-pretty logger, for callers that
// don't carry explicit config (e.g. a bare Engine construction in a test).
func NewDefault() *Logger {
	return New(Config{Level: "info"})
}

// WithContext attaches any command/correlation IDs found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zl := l.Logger.With()
	if id, ok := ctx.Value(CommandIDKey).(string); ok && id != "" {
		zl = zl.Str("command_id", id)
	}
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok && id != "" {
		zl = zl.Str("correlation_id", id)
	}
	logger := zl.Logger()
	return &Logger{&logger}
}

// WithCommandID tags log lines with the command instance they belong to.
func (l *Logger) WithCommandID(commandID string) *Logger {
	logger := l.Logger.With().Str("command_id", commandID).Logger()
	return &Logger{&logger}
}

// WithCorrelationID tags log lines with a caller-supplied correlation id,
// for tracing a command across a queue boundary.
func (l *Logger) WithCorrelationID(correlationID string) *Logger {
	logger := l.Logger.With().Str("correlation_id", correlationID).Logger()
	return &Logger{&logger}
}

// WithError attaches err to the logger.
func (l *Logger) WithError(err error) *Logger {
	logger := l.Logger.With().Err(err).Logger()
	return &Logger{&logger}
}

// WithField attaches one arbitrary field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	logger := l.Logger.With().Interface(key, value).Logger()
	return &Logger{&logger}
}

// WithFields attaches multiple fields at once.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	logContext := l.Logger.With()
	for k, v := range fields {
		logContext = logContext.Interface(k, v)
	}
	logger := logContext.Logger()
	return &Logger{&logger}
}

var (
	defaultLogger *Logger
	loggerMutex   sync.Mutex
)

// Init sets the package-level default logger, used by the bare Debug/Info/
// Warn/Error/Fatal helpers below.
func Init(cfg Config) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	defaultLogger = New(cfg)
	log.Logger = *defaultLogger.Logger
}

// GetLogger returns the package-level default logger, lazily initializing
// it at info level if Init was never called.
func GetLogger() *Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(Config{Level: "info"})
		log.Logger = *defaultLogger.Logger
	}
	return defaultLogger
}

func Debug() *zerolog.Event { return GetLogger().Logger.Debug() }
func Info() *zerolog.Event  { return GetLogger().Logger.Info() }
func Warn() *zerolog.Event  { return GetLogger().Logger.Warn() }
func Error() *zerolog.Event { return GetLogger().Logger.Error() }
func Fatal() *zerolog.Event { return GetLogger().Logger.Fatal() }

func WithContext(ctx context.Context) *Logger { return GetLogger().WithContext(ctx) }

func ContextWithCommandID(ctx context.Context, commandID string) context.Context {
	return context.WithValue(ctx, CommandIDKey, commandID)
}

func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

func GetCorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}
