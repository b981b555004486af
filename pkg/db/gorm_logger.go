package db

import (
	"context"
	"errors"
	"time"

	pkgLogger "github.com/wyfcoding/orderdesk/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger 将 GORM 日志接入统一日志组件
type GormLogger struct {
	enabled       bool
	slowThreshold time.Duration
}

// NewGormLogger 创建 GORM 日志记录器
func NewGormLogger(enabled bool, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		enabled:       enabled,
		slowThreshold: slowThreshold,
	}
}

// LogMode 设置日志级别（由统一日志组件控制，此处保持接口兼容）
func (l *GormLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

// Info 输出 info 级别日志
func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.enabled {
		pkgLogger.Info(ctx, msg, "args", args)
	}
}

// Warn 输出 warn 级别日志
func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.enabled {
		pkgLogger.Warn(ctx, msg, "args", args)
	}
}

// Error 输出 error 级别日志
func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	pkgLogger.Error(ctx, msg, "args", args)
}

// Trace 记录 SQL 执行情况，慢查询单独告警
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		pkgLogger.Error(ctx, "SQL execution failed",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
			"error", err,
		)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		pkgLogger.Warn(ctx, "Slow SQL detected",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
			"threshold", l.slowThreshold,
		)
	case l.enabled:
		pkgLogger.Debug(ctx, "SQL executed",
			"sql", sql,
			"rows", rows,
			"elapsed", elapsed,
		)
	}
}
