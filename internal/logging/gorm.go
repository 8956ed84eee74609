package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes gorm's SQL trace into slog. Statements are logged at
// debug, failed and slow statements at warn.
type GormLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

func NewGormLogger(logger *slog.Logger) *GormLogger {
	return &GormLogger{logger: logger, level: gormlogger.Info}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...), "component", "gorm")
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []any{"component", "gorm", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds()}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		l.logger.WarnContext(ctx, "sql failed", append(attrs, "error", err)...)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		l.logger.WarnContext(ctx, "slow sql", attrs...)
	case l.level >= gormlogger.Info:
		l.logger.DebugContext(ctx, "sql", attrs...)
	}
}
