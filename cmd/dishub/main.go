// Package main 提供 dishub 命令行入口
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/dep2p/go-dishub"
	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/internal/util/logger"
)

var log = logger.Logger("dishub.cmd")

// shutdownGrace 在排空超时之外额外给 HTTP 与各组件的停止时间
const shutdownGrace = 5 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.version {
		fmt.Println(dishub.VersionInfo())
		return nil
	}

	cfg, err := buildConfig(f, os.Getenv)
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	opts := []dishub.Option{dishub.WithConfig(cfg)}
	if path := logPath(f, os.Getenv); path != "" {
		opts = append(opts, dishub.WithLogFile(path))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg, opts)
}

// serve 启动节点与 HTTP 服务，直到 ctx 结束或 HTTP 服务失败
//
// HTTP 服务失败（如端口占用）作为错误返回。
func serve(ctx context.Context, cfg *config.Config, opts []dishub.Option) error {
	node, err := dishub.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = node.Close() }()

	if err := node.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.WebSocket.ListenAddr,
		Handler:           node.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	log.Info("dishub 已启动",
		"version", dishub.Version,
		"listen", cfg.WebSocket.ListenAddr,
		"path", cfg.WebSocket.Path,
		"network", cfg.Network.Enable,
		"bridge", cfg.Bridge.Enable)

	var failure error
	select {
	case <-ctx.Done():
		log.Info("收到退出信号，正在关闭")
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP 服务退出", "err", err)
			failure = fmt.Errorf("HTTP 服务: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Distributor.DrainTimeout.Duration()+shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP 服务关闭失败", "err", err)
	}
	return multierr.Append(failure, node.Stop(shutdownCtx))
}
