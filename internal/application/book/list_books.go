package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

const tracerName = "catalog"

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持分类过滤、排序、分页,排序由服务端决定
// 2. 默认值由HTTP层补齐,这里收到的page/pageSize<1一律视为参数错误
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Category string // 分类(精确匹配,区分大小写,空白表示不过滤)
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	SortBy   string // 排序字段,空表示title
	Order    string // asc | desc,空表示asc
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	TotalBooks int64
	Books      []*book.Book
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(
		attribute.String("catalog.category", req.Category),
		attribute.Int("catalog.page", req.Page),
		attribute.Int("catalog.page_size", req.PageSize),
	)

	// 1. 构建查询参数(校验与默认排序在领域服务中完成)
	params := book.ListParams{
		Category: req.Category,
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   book.SortField(req.SortBy),
		Order:    book.SortOrder(req.Order),
	}

	// 2. 查询
	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("catalog.total", total))
	return &ListBooksResponse{
		TotalBooks: total,
		Books:      books,
	}, nil
}

// ListCategoriesUseCase 分类列表用例
type ListCategoriesUseCase struct {
	bookService book.Service
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(bookService book.Service) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{bookService: bookService}
}

// Execute 返回去重后按字母升序的分类
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (categories []string, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListCategories")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.bookService.ListCategories(ctx)
}
