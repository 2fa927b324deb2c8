package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/jdql/utils"
)

// ZerologLogger implements Interface using zerolog
type ZerologLogger struct {
	Logger                   zerolog.Logger
	LogLevel                 LogLevel
	SlowThreshold            time.Duration
	Parameterized            bool
	IgnoreInvalidMethodError bool
}

// NewZerologLogger creates a new logger using zerolog
func NewZerologLogger(logger zerolog.Logger, config Config) Interface {
	return &ZerologLogger{
		Logger:                   logger,
		LogLevel:                 config.LogLevel,
		SlowThreshold:            config.SlowThreshold,
		Parameterized:            config.ParameterizedQueries,
		IgnoreInvalidMethodError: config.IgnoreInvalidMethodError,
	}
}

// NewZerologConsoleLogger zerolog console writer on stderr at the configured level
func NewZerologConsoleLogger(config Config) Interface {
	consoleWriter := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.RFC3339
		w.NoColor = !config.Colorful
	})
	logger := zerolog.New(consoleWriter).
		Level(ZerologLevel(config.LogLevel)).
		With().
		Timestamp().
		Logger()

	return NewZerologLogger(logger, config)
}

// LogMode sets the log level
func (l *ZerologLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *ZerologLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.event(ctx, l.Logger.Info(), data).Msg(msg)
	}
}

func (l *ZerologLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.event(ctx, l.Logger.Warn(), data).Msg(msg)
	}
}

func (l *ZerologLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.event(ctx, l.Logger.Error(), data).Msg(msg)
	}
}

func (l *ZerologLogger) event(ctx context.Context, event *zerolog.Event, data []interface{}) *zerolog.Event {
	event = event.Str("file", utils.FileWithLineNum()).Interface("data", data)
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	return event
}

// Trace logs rendered query details
func (l *ZerologLogger) Trace(ctx context.Context, begin time.Time, fc func() (query string, params int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	query, params := fc()

	var event *zerolog.Event
	switch {
	case err != nil && !skipTrace(err, l.IgnoreInvalidMethodError):
		event = l.Logger.Error().Err(err)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		event = l.Logger.Warn().
			Str("slow_threshold", l.SlowThreshold.String())
	case l.LogLevel >= Info:
		event = l.Logger.Info()
	default:
		return
	}

	event = event.
		Str("file", utils.FileWithLineNum()).
		Str("duration", fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)).
		Str("jdql", query)

	if params != -1 {
		event = event.Int64("params", params)
	}

	if ctx != nil {
		event = event.Ctx(ctx)
	}

	event.Msg("query rendered")
}

// ParamsFilter filters bound values
func (l *ZerologLogger) ParamsFilter(ctx context.Context, query string, params ...interface{}) (string, []interface{}) {
	if l.Parameterized {
		return query, nil
	}
	return query, params
}

// ZerologLevel converts LogLevel to zerolog.Level
func ZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case Silent:
		return zerolog.Disabled
	case Error:
		return zerolog.ErrorLevel
	case Warn:
		return zerolog.WarnLevel
	case Info:
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
