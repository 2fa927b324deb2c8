package cli

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gorm.io/jdql/logger"
)

// Loggers names accepted by --logger
var Loggers = []string{"std", "zerolog", "logrus", "zap", "slog"}

// NewLogger create the named logger writing to w, an empty level is silent
func NewLogger(name, level string, w io.Writer) (logger.Interface, error) {
	if level == "" {
		level = "silent"
	}

	logLevel, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := logger.Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      logLevel,
	}

	switch name {
	case "", "std":
		return logger.New(log.New(w, "\r\n", log.LstdFlags), config), nil
	case "zerolog":
		return logger.NewZerologLogger(zerolog.New(w).Level(logger.ZerologLevel(logLevel)).With().Timestamp().Logger(), config), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		l.SetLevel(logger.LogrusLevel(logLevel))
		return logger.NewLogrusLogger(l, config), nil
	case "zap":
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), logger.ZapLevel(logLevel))
		return logger.NewZapLogger(zap.New(core), config), nil
	case "slog":
		return logger.NewSlogLogger(slog.New(slog.NewTextHandler(w, nil)), config), nil
	}
	return nil, fmt.Errorf("unknown logger %q: must be one of %v", name, Loggers)
}
