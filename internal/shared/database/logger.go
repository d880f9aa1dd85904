package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sample1/member-api/internal/config"
	"github.com/sample1/member-api/internal/shared/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts slog for GORM.
// Queries are logged through the request logger stored in ctx, so SQL lines carry request_id.
type GormLogger struct {
	attrs                []any
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
	HideSqlInLog         bool
	LogLevel             gormlogger.LogLevel
}

// newLogger creates a new GORM logger with slog
func newLogger(cfg *config.Config) gormlogger.Interface {
	// local/dev = info level, prod = error level only
	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	return &GormLogger{
		attrs:                []any{"component", "gorm", "driver", cfg.Database.Driver},
		SlowThreshold:        cfg.Database.SlowThreshold,
		IgnoreRecordNotFound: true,               // not logging db level not found
		HideSqlInLog:         cfg.IsProduction(), // Hide query parameters in production
		LogLevel:             logLevel,
	}
}

func (l *GormLogger) log(ctx context.Context) *slog.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.FromContext(ctx).With(l.attrs...)
}

// LogMode sets the log level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		l.log(ctx).InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		l.log(ctx).WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		l.log(ctx).ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs SQL queries with timing information
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []any{"elapsed", elapsed.String(), "rows", rows}
	if !l.HideSqlInLog {
		fields = append(fields, "sql", sql)
	}

	switch {
	// duplicate key는 서비스 계층에서 도메인 오류(이메일 중복)로 처리한다
	case err != nil && l.LogLevel >= gormlogger.Error &&
		(!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFound) &&
		!errors.Is(err, gorm.ErrDuplicatedKey):
		l.log(ctx).ErrorContext(ctx, "Database query error", append(fields, "error", err)...)

	case elapsed > l.SlowThreshold && l.SlowThreshold != 0 && l.LogLevel >= gormlogger.Warn:
		l.log(ctx).WarnContext(ctx, "Slow SQL query detected", append(fields, "threshold", l.SlowThreshold.String())...)

	case l.LogLevel >= gormlogger.Info:
		l.log(ctx).DebugContext(ctx, "SQL query executed", fields...)
	}
}
