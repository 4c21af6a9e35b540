package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/minibookstore/internal/application/book"
	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/internal/domain/cart"
	"github.com/xiebiao/minibookstore/internal/infrastructure/config"
	"github.com/xiebiao/minibookstore/internal/infrastructure/messaging"
	"github.com/xiebiao/minibookstore/internal/infrastructure/persistence/cached"
	"github.com/xiebiao/minibookstore/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/minibookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/minibookstore/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/minibookstore/pkg/jwt"
	"github.com/xiebiao/minibookstore/pkg/logger"
	"github.com/xiebiao/minibookstore/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Server *http.Server
}

// provideLogger 按配置创建日志器并替换zap全局日志器
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, nil, err
	}
	restore := zap.ReplaceGlobals(log)
	return log, func() {
		_ = log.Sync()
		restore()
	}, nil
}

// provideDB 创建数据库连接,cleanup关闭连接池
// logger参数只用于保证全局日志器先于数据库初始化
func provideDB(cfg *config.Config, _ *zap.Logger) (*gorm.DB, func(), error) {
	db, err := sqlstore.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

// provideRedisClient 未启用Redis时返回nil
func provideRedisClient(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	client, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideBookRepository 数据库仓储,启用目录缓存时套一层缓存装饰器
func provideBookRepository(cfg *config.Config, db *gorm.DB, client *goredis.Client, log *zap.Logger) book.Repository {
	repo := sqlstore.NewBookRepository(db)
	if !cfg.Cache.Enabled || client == nil {
		return repo
	}

	store := redis.NewCacheStore(client, cfg.Cache.DetailTTL, cfg.Cache.ListTTL)
	return cached.NewBookRepository(repo, store, cached.NewBreaker(log), log)
}

// provideCartStore 启用Redis时购物车存Redis,否则存进程内存
func provideCartStore(cfg *config.Config, client *goredis.Client) cart.Store {
	if client != nil {
		return redis.NewCartStore(client, cfg.Cart.SessionTTL)
	}
	return memory.NewCartStore()
}

// provideEventPublisher 启用消息队列时发布到RabbitMQ,否则丢弃事件
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (appbook.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return appbook.NopEventPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic", cfg.Tracing.ServiceName)
	if err != nil {
		return nil, nil, err
	}
	log.Info("目录事件发布已启用", zap.String("exchange", publisher.Exchange()))
	return messaging.NewBookEventPublisher(publisher), func() { _ = publisher.Close() }, nil
}

// provideSessionManager 购物车会话Token管理器
func provideSessionManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.Cart.SessionSecret, cfg.Cart.SessionTTL)
}

// provideServer HTTP服务器
func provideServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
}

// provideApp 汇总
func provideApp(cfg *config.Config, log *zap.Logger, server *http.Server) *App {
	return &App{
		Config: cfg,
		Logger: log,
		Server: server,
	}
}
