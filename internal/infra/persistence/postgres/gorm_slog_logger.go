package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"brewshare/config"
	deliverycontext "brewshare/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger adapts logger.Interface to slog. Statements are written to the
// request-scoped logger when ctx carries one, so SQL lines share the request_id.
type gormSlogLogger struct {
	base          *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
	// Bound values (password hashes among them) are never rendered into logged SQL.
	parameterizedQueries bool
}

func newGormSlogLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &gormSlogLogger{
		base:                 base,
		level:                level,
		slowThreshold:        defaultGormSlowThreshold,
		parameterizedQueries: true,
	}
}

// ParamsFilter implements logger.ParamsFilter.
func (l *gormSlogLogger) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	if l.parameterizedQueries {
		return sql, nil
	}

	return sql, params
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

// Trace logs failed statements, then slow ones, then (at Info) every statement.
// gorm.ErrRecordNotFound is an expected lookup miss and is not logged.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.base == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)

	switch {
	case failed && l.level >= logger.Error:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.String("error", err.Error()))
		l.emit(ctx, slog.LevelError, "GORM query failed", attrs)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		attrs := append(queryAttrs(sqlAndRowsFn, elapsed), slog.Duration("slowThreshold", l.slowThreshold))
		l.emit(ctx, slog.LevelWarn, "GORM slow query", attrs)
	case !failed && l.level >= logger.Info:
		l.emit(ctx, slog.LevelInfo, "GORM query", queryAttrs(sqlAndRowsFn, elapsed))
	}
}

func (l *gormSlogLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.base == nil || l.level < threshold {
		return
	}

	l.emit(ctx, level, "GORM "+level.String(), []slog.Attr{slog.String("message", fmt.Sprintf(msg, args...))})
}

func (l *gormSlogLogger) emit(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	deliverycontext.GetLoggerOrDefault(ctx, l.base).LogAttrs(ctx, level, msg, attrs...)
}

func queryAttrs(sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
}
