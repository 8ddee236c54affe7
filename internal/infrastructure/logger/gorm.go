package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger sends GORM's messages to zap, tagged with the request ID when the
// query runs under a request. Slow statements are left to the otelgorm spans.
type GormLogger struct {
	logger *zap.Logger
	level  gormlogger.LogLevel
}

var _ gormlogger.Interface = (*GormLogger)(nil)

func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{logger: zapLogger.Named("gorm"), level: level}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormLogger{logger: l.logger, level: level}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.scoped(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.scoped(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.scoped(ctx).Sugar().Errorf(msg, data...)
	}
}

// Trace logs failed statements at error, and every statement at debug when
// the level is Info. A missing row is not a failure.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	if !(failed && l.level >= gormlogger.Error) && l.level < gormlogger.Info {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", time.Since(begin)),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if failed && l.level >= gormlogger.Error {
		l.scoped(ctx).Error("SQL Error", append(fields, zap.Error(err))...)
		return
	}
	l.scoped(ctx).Debug("SQL Query", fields...)
}

func (l *GormLogger) scoped(ctx context.Context) *zap.Logger {
	if id := GetRequestID(ctx); id != "" {
		return l.logger.With(zap.String("request_id", id))
	}
	return l.logger
}

// MapGormLogLevel maps the application log level onto GORM's; unknown names mean warn
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	}
	return gormlogger.Warn
}
