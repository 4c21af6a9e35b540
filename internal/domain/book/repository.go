package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 缓存层以装饰器方式实现同一接口
type Repository interface {
	// Create 创建图书,回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 整条替换图书,不存在返回ErrBookNotFound
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除),不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// List 按分类过滤、排序、分页查询,返回当前页和过滤后的总数
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListCategories 去重后的分类列表(升序)
	ListCategories(ctx context.Context) ([]string, error)
}

// SortField 排序字段
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByAuthor    SortField = "author"
	SortByPublisher SortField = "publisher"
	SortByISBN      SortField = "isbn"
	SortByCategory  SortField = "category"
	SortByPageCount SortField = "pageCount"
	SortByPrice     SortField = "price"
)

// SortOrder 排序方向
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListParams 列表查询参数
type ListParams struct {
	Category string    // 分类(精确匹配,区分大小写,空表示不过滤)
	Page     int       // 页码(从1开始)
	PageSize int       // 每页数量
	SortBy   SortField // 排序字段,默认title
	Order    SortOrder // 排序方向,默认asc
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Valid 检查排序字段是否受支持
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByAuthor, SortByPublisher, SortByISBN, SortByCategory, SortByPageCount, SortByPrice:
		return true
	}
	return false
}

// Valid 检查排序方向是否受支持
func (o SortOrder) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}
