package gormstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"":       gormlogger.Warn,
		"silent": gormlogger.Silent,
		"ERROR":  gormlogger.Error,
		"info":   gormlogger.Info,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLogger(zap.New(core), gormlogger.Warn)
	query := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), query, nil)
	assert.Equal(t, 0, logs.Len())

	l.Trace(context.Background(), time.Now(), query, errors.New("disk I/O error"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "sql_query_failed", entry.Message)
	assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
	assert.Equal(t, "gorm", entry.ContextMap()["component"])

	l.Trace(context.Background(), time.Now().Add(-2*time.Second), query, nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "sql_query_slow", logs.All()[1].Message)

	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), query, errors.New("x"))
	assert.Equal(t, 2, logs.Len())
}
