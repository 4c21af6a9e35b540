package book

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 应用层负责用例编排:领域服务校验并持久化,成功后发布目录事件
// 2. 事件发布失败只记录日志,不影响新增结果
type CreateBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service, publisher EventPublisher, logger *zap.Logger) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
		logger:      logger,
	}
}

// BookInput 新增/修改图书的输入
type BookInput struct {
	ID        uint // 新增时忽略
	Title     string
	Author    string
	Publisher string
	ISBN      string
	Category  string
	PageCount int
	Price     decimal.Decimal
}

func (in BookInput) toEntity() *book.Book {
	b := book.NewBook(in.Title, in.Author, in.Publisher, in.ISBN, in.Category, in.PageCount, in.Price)
	b.ID = in.ID
	return b
}

// Execute 执行新增,返回带ID的图书
func (uc *CreateBookUseCase) Execute(ctx context.Context, in BookInput) (created *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 校验并持久化(客户端传入的ID被忽略)
	created, err = uc.bookService.CreateBook(ctx, in.toEntity())
	if err != nil {
		return nil, err
	}

	// 2. 发布事件
	publish(ctx, uc.publisher, uc.logger, newBookEvent(EventBookCreated, created))

	return created, nil
}

// publish 发布目录事件,失败只记录warn日志
func publish(ctx context.Context, publisher EventPublisher, logger *zap.Logger, event BookEvent) {
	if err := publisher.PublishBookEvent(ctx, event); err != nil {
		logger.Warn("目录事件发布失败",
			zap.String("event", string(event.Type)),
			zap.Uint("book_id", event.BookID),
			zap.String("trace_id", tracing.ExtractTraceID(ctx)),
			zap.Error(err),
		)
	}
}
