package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 按ID查询,不存在时返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	return uc.bookService.GetBookByID(ctx, id)
}
