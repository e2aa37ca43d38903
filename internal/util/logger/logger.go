// Package logger 提供 dishub 的统一日志系统
//
// 基于标准库 log/slog，每个子系统一个缓存的 Logger：
//
//	var log = logger.Logger("core.network")
//
//	log.Info("收到数据报", "from", addr, "size", n)
//
// 环境变量配置:
//
//	# 默认 info，network 子系统 debug
//	DISHUB_LOG_LEVEL=core.network=debug,info
//
//	# JSON 输出
//	DISHUB_LOG_FORMAT=json
package logger

import (
	"io"
	"log/slog"
	"sync"
)

var (
	// loggers 子系统 -> *slog.Logger
	loggers sync.Map

	// levels 子系统 -> *slog.LevelVar，用于运行时调整级别
	levels sync.Map
)

// Logger 获取指定子系统的 Logger
//
// 同一子系统多次调用返回同一实例。级别来自 DISHUB_LOG_LEVEL。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	lv := new(slog.LevelVar)
	lv.Set(cfg.LevelForSubsystem(subsystem))

	l := slog.New(newHandler(subsystem, lv, cfg))
	actual, loaded := loggers.LoadOrStore(subsystem, l)
	if !loaded {
		levels.Store(subsystem, lv)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
func SetLevel(subsystem string, level slog.Level) {
	if lv, ok := levels.Load(subsystem); ok {
		lv.(*slog.LevelVar).Set(level)
	}
}

// SetGlobalLevel 设置所有已创建子系统的日志级别
func SetGlobalLevel(level slog.Level) {
	levels.Range(func(_, v any) bool {
		v.(*slog.LevelVar).Set(level)
		return true
	})
}

// Discard 返回一个丢弃所有日志的 Logger（测试用）
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// SetOutput 设置全局日志输出目标
//
// 已创建的 Logger 同样会切换到新的输出。
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

// Writer 返回跟随 SetOutput 切换的全局输出
//
// 供非 slog 的日志库（如 fx 事件日志）写入同一目标。
func Writer() io.Writer {
	return dynamicWriter{}
}
