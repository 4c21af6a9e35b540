package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例(物理删除)
type DeleteBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service, publisher EventPublisher, logger *zap.Logger) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute 执行删除,不存在时返回book.ErrBookNotFound
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	publish(ctx, uc.publisher, uc.logger, newDeletedEvent(id))
	return nil
}
