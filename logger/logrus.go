package logger

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/jdql/utils"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger                   *logrus.Logger
	LogLevel                 LogLevel
	SlowThreshold            time.Duration
	Parameterized            bool
	IgnoreInvalidMethodError bool
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{
		Logger:                   logger,
		LogLevel:                 config.LogLevel,
		SlowThreshold:            config.SlowThreshold,
		Parameterized:            config.ParameterizedQueries,
		IgnoreInvalidMethodError: config.IgnoreInvalidMethodError,
	}
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *LogrusLogger) entry(ctx context.Context, data []interface{}) *logrus.Entry {
	entry := l.Logger.WithFields(logrus.Fields{
		"file": utils.FileWithLineNum(),
		"data": data,
	})
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx, data).Info(msg)
	}
}

func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx, data).Warn(msg)
	}
}

func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx, data).Error(msg)
	}
}

// Trace logs rendered query details
func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (query string, params int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	query, params := fc()

	fields := logrus.Fields{
		"file":     utils.FileWithLineNum(),
		"duration": fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6),
		"jdql":     query,
	}

	if params != -1 {
		fields["params"] = params
	}

	entry := l.Logger.WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}

	switch {
	case err != nil && !skipTrace(err, l.IgnoreInvalidMethodError):
		entry.WithError(err).Error("query rendered")

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		entry.WithField("slow_threshold", l.SlowThreshold.String()).Warn("SLOW query rendered")

	case l.LogLevel >= Info:
		entry.Info("query rendered")
	}
}

// ParamsFilter filters bound values
func (l *LogrusLogger) ParamsFilter(ctx context.Context, query string, params ...interface{}) (string, []interface{}) {
	if l.Parameterized {
		return query, nil
	}
	return query, params
}

// LogrusLevel converts LogLevel to logrus.Level
func LogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case Silent:
		return logrus.PanicLevel
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
