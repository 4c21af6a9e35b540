package book

import (
	"context"
	"math"
	"strings"
)

// 分页默认值
const (
	DefaultPage     = 1
	DefaultPageSize = 5
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(必填字段、分页、排序)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 新增图书,ID由存储层生成
	CreateBook(ctx context.Context, book *Book) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 整条替换图书
	// 业务规则:路径ID必须与请求体ID一致,目标必须存在
	UpdateBook(ctx context.Context, id uint, book *Book) error

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表(补齐默认值并校验)
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListCategories 查询全部分类
	ListCategories(ctx context.Context) ([]string, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, book *Book) (*Book, error) {
	// 1. 必填字段校验
	if err := book.Validate(); err != nil {
		return nil, err
	}

	// 2. 忽略客户端传入的ID
	book.ID = 0

	// 3. 持久化
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 整条替换图书
func (s *service) UpdateBook(ctx context.Context, id uint, book *Book) error {
	// 1. ID一致性检查
	if book.ID != id {
		return ErrIDMismatch
	}

	// 2. 必填字段校验
	if err := book.Validate(); err != nil {
		return err
	}

	// 3. 持久化(不存在时仓储返回ErrBookNotFound)
	return s.repo.Update(ctx, book)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	params, err := NormalizeListParams(params)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, params)
}

// ListCategories 查询全部分类
func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// NormalizeListParams 补齐排序默认值并校验
// 规则:
// - page/pageSize小于1返回ErrInvalidPagination(默认值由接口层补齐)
// - (page-1)*pageSize溢出int时同样返回ErrInvalidPagination
// - 空白分类视为不过滤
// - sortBy为空时按title排序,order为空时升序,order不区分大小写
func NormalizeListParams(p ListParams) (ListParams, error) {
	if p.Page < 1 || p.PageSize < 1 {
		return p, ErrInvalidPagination
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return p, ErrInvalidPagination
	}

	if strings.TrimSpace(p.Category) == "" {
		p.Category = ""
	}

	if p.SortBy == "" {
		p.SortBy = SortByTitle
	}
	p.Order = SortOrder(strings.ToLower(string(p.Order)))
	if p.Order == "" {
		p.Order = OrderAsc
	}
	if !p.SortBy.Valid() || !p.Order.Valid() {
		return p, ErrInvalidSort
	}
	return p, nil
}
