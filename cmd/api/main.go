// @title           minibookstore API
// @version         1.0
// @description     迷你书店:图书目录(过滤、排序、分页)与按会话隔离的购物车
// @BasePath        /
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/xiebiao/minibookstore/docs"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

// main 主程序入口
// 依赖由Wire生成的InitializeApp组装(见wire.go)
func main() {
	// 1. 组装应用
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("初始化应用失败: %v", err)
	}
	defer cleanup()

	cfg, logger := app.Config, app.Logger

	// 2. 链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(context.Background(), cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			logger.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
		logger.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	// 3. 启动HTTP服务
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动",
			zap.String("addr", app.Server.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("database", cfg.Database.Driver),
			zap.Bool("redis", cfg.Redis.Enabled),
			zap.Bool("cache", cfg.Cache.Enabled),
			zap.Bool("mq", cfg.MQ.Enabled),
		)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 4. 等待退出信号,优雅关闭(最多等待10秒处理中的请求)
	select {
	case <-ctx.Done():
		logger.Info("收到退出信号,开始关闭服务")
	case err := <-errCh:
		logger.Error("服务异常退出", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务关闭失败", zap.Error(err))
		return
	}
	logger.Info("服务已关闭")
}
