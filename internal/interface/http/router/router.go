// Package router 组装gin引擎:全局中间件 + 路由表
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/infrastructure/config"
	"github.com/xiebiao/minibookstore/internal/interface/http/handler"
	"github.com/xiebiao/minibookstore/internal/interface/http/middleware"
	"github.com/xiebiao/minibookstore/pkg/response"
)

// New 创建并配置Gin引擎
func New(
	cfg *config.Config,
	logger *zap.Logger,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	cartSession *middleware.CartSessionMiddleware,
) *gin.Engine {
	// 设置运行模式
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.Tracing(),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// 监控指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档,访问 /swagger/index.html
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		// 图书模块
		books := api.Group("/book")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/categories", bookHandler.ListCategories)
			books.GET("/:id", bookHandler.GetBook)
			books.POST("", bookHandler.CreateBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}

		// 购物车模块(按会话隔离)
		carts := api.Group("/cart")
		carts.Use(cartSession.Handle())
		{
			carts.GET("", cartHandler.GetCart)
			carts.GET("/summary", cartHandler.Summary)
			carts.POST("/add", cartHandler.Add)
			carts.POST("/remove", cartHandler.Remove)
			carts.PUT("", cartHandler.Replace)
			carts.POST("/clear", cartHandler.Clear)
		}
	}

	return r
}
