//go:build go1.21

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/jdql/utils"
)

type slogLogger struct {
	Logger                   *slog.Logger
	LogLevel                 LogLevel
	SlowThreshold            time.Duration
	Parameterized            bool
	IgnoreInvalidMethodError bool
}

func NewSlogLogger(logger *slog.Logger, config Config) Interface {
	return &slogLogger{
		Logger:                   logger,
		LogLevel:                 config.LogLevel,
		SlowThreshold:            config.SlowThreshold,
		Parameterized:            config.ParameterizedQueries,
		IgnoreInvalidMethodError: config.IgnoreInvalidMethodError,
	}
}

func (l *slogLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *slogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.log(ctx, slog.LevelInfo, msg, slog.Any("data", data))
	}
}

func (l *slogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.log(ctx, slog.LevelWarn, msg, slog.Any("data", data))
	}
}

func (l *slogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.log(ctx, slog.LevelError, msg, slog.Any("data", data))
	}
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (query string, params int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	query, params := fc()
	fields := []slog.Attr{
		slog.String("duration", fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)),
		slog.String("jdql", query),
	}

	if params != -1 {
		fields = append(fields, slog.Int64("params", params))
	}

	switch {
	case err != nil && !skipTrace(err, l.IgnoreInvalidMethodError):
		fields = append(fields, slog.String("error", err.Error()))
		l.log(ctx, slog.LevelError, "query rendered", slog.Attr{
			Key:   "trace",
			Value: slog.GroupValue(fields...),
		})

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		fields = append(fields, slog.String("slow_threshold", l.SlowThreshold.String()))
		l.log(ctx, slog.LevelWarn, "query rendered", slog.Attr{
			Key:   "trace",
			Value: slog.GroupValue(fields...),
		})

	case l.LogLevel >= Info:
		l.log(ctx, slog.LevelInfo, "query rendered", slog.Attr{
			Key:   "trace",
			Value: slog.GroupValue(fields...),
		})
	}
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}

	if !l.Logger.Enabled(ctx, level) {
		return
	}

	r := slog.NewRecord(time.Now(), level, msg, utils.CallerFrame().PC)
	r.Add(args...)
	_ = l.Logger.Handler().Handle(ctx, r)
}

// ParamsFilter filter params
func (l *slogLogger) ParamsFilter(ctx context.Context, query string, params ...interface{}) (string, []interface{}) {
	if l.Parameterized {
		return query, nil
	}
	return query, params
}
