package logger

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/jdql/method"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
		err   bool
	}{
		{input: "silent", want: Silent},
		{input: "ERROR", want: Error},
		{input: " warn ", want: Warn},
		{input: "warning", want: Warn},
		{input: "info", want: Info},
		{input: "debug", err: true},
		{input: "", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.want, mustParse(t, level.String()))
		})
	}
}

func mustParse(t *testing.T, s string) LogLevel {
	level, err := ParseLevel(s)
	require.NoError(t, err)
	return level
}

func TestLogger(t *testing.T) {
	ctx := context.Background()

	newLogger := func(level LogLevel, config Config) (Interface, *bytes.Buffer) {
		var buf bytes.Buffer
		config.LogLevel = level
		return New(log.New(&buf, "", 0), config), &buf
	}

	t.Run("Info", func(t *testing.T) {
		l, buf := newLogger(Info, Config{})
		l.Info(ctx, "cached %v", "findByName")
		assert.Contains(t, buf.String(), "[info] cached findByName")
		assert.Contains(t, buf.String(), "logger_test.go")
	})

	t.Run("LevelFilter", func(t *testing.T) {
		l, buf := newLogger(Warn, Config{})
		l.Info(ctx, "hidden")
		l.Warn(ctx, "shown %d", 1)
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "[warn] shown 1")
	})

	t.Run("Trace", func(t *testing.T) {
		l, buf := newLogger(Info, Config{})
		l.Trace(ctx, time.Now(), func() (string, int64) {
			return "where name = ?1", 1
		}, nil)
		assert.Contains(t, buf.String(), "[params:1] where name = ?1")
	})

	t.Run("TraceUnknownParams", func(t *testing.T) {
		l, buf := newLogger(Info, Config{})
		l.Trace(ctx, time.Now(), func() (string, int64) {
			return "where name = ?1", -1
		}, nil)
		assert.Contains(t, buf.String(), "[params:-] where name = ?1")
	})

	t.Run("TraceSlow", func(t *testing.T) {
		l, buf := newLogger(Warn, Config{SlowThreshold: time.Millisecond})
		l.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
			return "where name = ?1", 1
		}, nil)
		assert.Contains(t, buf.String(), "SLOW QUERY >= 1ms")
	})

	t.Run("TraceError", func(t *testing.T) {
		l, buf := newLogger(Error, Config{})
		err := fmt.Errorf("render: %w", assert.AnError)
		l.Trace(ctx, time.Now(), func() (string, int64) { return "", 0 }, err)
		assert.Contains(t, buf.String(), assert.AnError.Error())
	})

	t.Run("IgnoreInvalidMethodError", func(t *testing.T) {
		l, buf := newLogger(Info, Config{IgnoreInvalidMethodError: true})
		err := &method.SyntaxError{Method: "findBy", Pos: 6, Msg: "missing condition after By"}
		l.Trace(ctx, time.Now(), func() (string, int64) { return "", 0 }, err)
		assert.NotContains(t, buf.String(), "findBy")
	})

	t.Run("Silent", func(t *testing.T) {
		l, buf := newLogger(Silent, Config{})
		l.Error(ctx, "hidden")
		l.Trace(ctx, time.Now(), func() (string, int64) { return "", 0 }, assert.AnError)
		assert.Empty(t, buf.String())
	})

	t.Run("LogMode", func(t *testing.T) {
		l, buf := newLogger(Silent, Config{})
		l.LogMode(Info).Info(ctx, "shown")
		l.Info(ctx, "hidden")
		assert.Contains(t, buf.String(), "shown")
		assert.NotContains(t, buf.String(), "hidden")
	})
}
