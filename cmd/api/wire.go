//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/minibookstore/internal/application/book"
	appcart "github.com/xiebiao/minibookstore/internal/application/cart"
	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/internal/domain/cart"
	"github.com/xiebiao/minibookstore/internal/infrastructure/config"
	"github.com/xiebiao/minibookstore/internal/interface/http/handler"
	"github.com/xiebiao/minibookstore/internal/interface/http/middleware"
	"github.com/xiebiao/minibookstore/internal/interface/http/router"
)

// infrastructureSet 基础设施:配置、日志、数据库、Redis、消息队列
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideDB,
	provideRedisClient,
	provideEventPublisher,
	provideSessionManager,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	provideBookRepository,
	provideCartStore,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
	cart.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewListCategoriesUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appcart.NewGetCartUseCase,
	appcart.NewCartSummaryUseCase,
	appcart.NewAddToCartUseCase,
	appcart.NewRemoveFromCartUseCase,
	appcart.NewReplaceCartUseCase,
	appcart.NewClearCartUseCase,
)

// interfaceSet HTTP处理器、中间件、路由
var interfaceSet = wire.NewSet(
	middleware.NewCartSessionMiddleware,
	handler.NewBookHandler,
	handler.NewCartHandler,
	router.New,
	provideServer,
)

// InitializeApp 初始化整个应用
// cleanup按创建的逆序释放资源(消息队列、Redis、数据库、日志)
func InitializeApp() (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		provideApp,
	)
	return nil, nil, nil
}
