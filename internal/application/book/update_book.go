package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

// UpdateBookUseCase 修改图书用例(整条替换)
type UpdateBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewUpdateBookUseCase 创建修改图书用例
func NewUpdateBookUseCase(bookService book.Service, publisher EventPublisher, logger *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute 执行修改
// 业务规则:
// - 路径ID与请求体ID不一致返回book.ErrIDMismatch
// - 目标不存在返回book.ErrBookNotFound
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, in BookInput) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	b := in.toEntity()
	if err := uc.bookService.UpdateBook(ctx, id, b); err != nil {
		return err
	}

	publish(ctx, uc.publisher, uc.logger, newBookEvent(EventBookUpdated, b))
	return nil
}
