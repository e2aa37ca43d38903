package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Limited 限速日志记录器
//
// 用于收发循环中的重复错误：每个周期最多输出 burst 条，
// 其余被计数，下次放行时附带 suppressed 属性。
type Limited struct {
	log        *slog.Logger
	limiter    *rate.Limiter
	suppressed atomic.Int64
}

// NewLimited 创建限速日志记录器
func NewLimited(log *slog.Logger, every time.Duration, burst int) *Limited {
	if burst <= 0 {
		burst = 1
	}
	return &Limited{
		log:     log,
		limiter: rate.NewLimiter(rate.Every(every), burst),
	}
}

// Warn 限速输出 warn 日志，返回本条是否被输出
func (l *Limited) Warn(msg string, args ...any) bool {
	return l.emit(slog.LevelWarn, msg, args)
}

// Error 限速输出 error 日志，返回本条是否被输出
func (l *Limited) Error(msg string, args ...any) bool {
	return l.emit(slog.LevelError, msg, args)
}

func (l *Limited) emit(level slog.Level, msg string, args []any) bool {
	if !l.limiter.Allow() {
		l.suppressed.Add(1)
		return false
	}
	if n := l.suppressed.Swap(0); n > 0 {
		args = append(args, "suppressed", n)
	}
	l.log.Log(context.Background(), level, msg, args...)
	return true
}

// Suppressed 返回当前累计被抑制的条数
func (l *Limited) Suppressed() int64 {
	return l.suppressed.Load()
}
