package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = time.Second

// zapLogger routes GORM's SQL logging into zap.
type zapLogger struct {
	log   *zap.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

// NewLogger adapts base to gorm's logger.Interface. Record-not-found errors are not logged.
func NewLogger(base *zap.Logger, level gormlogger.LogLevel) gormlogger.Interface {
	if base == nil {
		base = zap.NewNop()
	}
	return &zapLogger{
		log:   base.With(zap.String("component", "gorm")),
		level: level,
		slow:  slowQueryThreshold,
	}
}

// ParseLogLevel maps silent, error, warn or info onto a gorm level. Empty means warn.
func ParseLogLevel(s string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "", "warn", "warning":
		return gormlogger.Warn, nil
	case "info":
		return gormlogger.Info, nil
	default:
		return gormlogger.Warn, fmt.Errorf("gormstore: unknown log level %q", s)
	}
}

func (l *zapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *zapLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.withTrace(ctx).Info("gorm_info", zap.String("detail", fmt.Sprintf(msg, args...)))
	}
}

func (l *zapLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.withTrace(ctx).Warn("gorm_warn", zap.String("detail", fmt.Sprintf(msg, args...)))
	}
}

func (l *zapLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.withTrace(ctx).Error("gorm_error", zap.String("detail", fmt.Sprintf(msg, args...)))
	}
}

func (l *zapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.withTrace(ctx).Error("sql_query_failed",
			zap.Error(err),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		)
	case elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.withTrace(ctx).Warn("sql_query_slow",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", l.slow),
		)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.withTrace(ctx).Debug("sql_query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		)
	}
}

func (l *zapLogger) withTrace(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.log
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l.log
	}
	return l.log.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
