package logger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/jdql/utils"
)

// ZapLogger implements Interface using zap
type ZapLogger struct {
	Logger                   *zap.Logger
	LogLevel                 LogLevel
	SlowThreshold            time.Duration
	Parameterized            bool
	IgnoreInvalidMethodError bool
}

// NewZapLogger creates a new logger using zap
func NewZapLogger(logger *zap.Logger, config Config) Interface {
	return &ZapLogger{
		Logger:                   logger,
		LogLevel:                 config.LogLevel,
		SlowThreshold:            config.SlowThreshold,
		Parameterized:            config.ParameterizedQueries,
		IgnoreInvalidMethodError: config.IgnoreInvalidMethodError,
	}
}

// NewZapLoggerWithConfig creates a new zap logger, production config unless zapConfig is given
func NewZapLoggerWithConfig(config Config, zapConfig ...zap.Config) (Interface, error) {
	var zapCfg zap.Config
	if len(zapConfig) > 0 {
		zapCfg = zapConfig[0]
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(ZapLevel(config.LogLevel))
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(logger, config), nil
}

// LogMode sets the log level
func (l *ZapLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *ZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Logger.Info(msg, zap.String("file", utils.FileWithLineNum()), zap.Any("data", data))
	}
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Logger.Warn(msg, zap.String("file", utils.FileWithLineNum()), zap.Any("data", data))
	}
}

func (l *ZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Logger.Error(msg, zap.String("file", utils.FileWithLineNum()), zap.Any("data", data))
	}
}

// Trace logs rendered query details
func (l *ZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (query string, params int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	query, params := fc()

	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.String("duration", fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)),
		zap.String("jdql", query),
	}

	if params != -1 {
		fields = append(fields, zap.Int64("params", params))
	}

	switch {
	case err != nil && !skipTrace(err, l.IgnoreInvalidMethodError):
		fields = append(fields, zap.Error(err))
		l.Logger.Error("query rendered", fields...)

	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		fields = append(fields, zap.String("slow_threshold", l.SlowThreshold.String()))
		l.Logger.Warn("SLOW query rendered", fields...)

	case l.LogLevel >= Info:
		l.Logger.Info("query rendered", fields...)
	}
}

// ParamsFilter filters bound values
func (l *ZapLogger) ParamsFilter(ctx context.Context, query string, params ...interface{}) (string, []interface{}) {
	if l.Parameterized {
		return query, nil
	}
	return query, params
}

// ZapLevel converts LogLevel to zapcore.Level
func ZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case Silent:
		return zapcore.DPanicLevel
	case Error:
		return zapcore.ErrorLevel
	case Warn:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
