package cli

import (
	"errors"
	"fmt"

	"github.com/xiebiao/minibookstore/pkg/client"
)

// PageSizeOptions 可选的每页数量
var PageSizeOptions = []int{5, 10, 20, 50}

const (
	DefaultPageSize  = 5
	DefaultSortField = "title"
)

// SortFields 可排序的列,顺序即表格列顺序
var SortFields = []string{"title", "author", "publisher", "isbn", "category", "pageCount", "price"}

var (
	ErrInvalidPageSize  = errors.New("每页数量只能是5/10/20/50")
	ErrInvalidSortField = errors.New("不支持的排序字段")
	ErrPageOutOfRange   = errors.New("页码超出范围")
)

// CatalogView 目录视图状态
// 排序、分类、每页数量变化时页码回到1
type CatalogView struct {
	Category  string
	Page      int
	PageSize  int
	SortField string
	Desc      bool

	// 最近一次成功加载的结果
	Books      []client.Book
	TotalBooks int64
	// 最近一次加载失败的原因,成功加载后清空
	Err error
}

// NewCatalogView 默认状态:第1页,每页5本,按书名升序
func NewCatalogView() *CatalogView {
	return &CatalogView{
		Page:      1,
		PageSize:  DefaultPageSize,
		SortField: DefaultSortField,
	}
}

// Params 当前状态对应的列表查询参数
func (v *CatalogView) Params() client.ListParams {
	return client.ListParams{
		Category: v.Category,
		Page:     v.Page,
		PageSize: v.PageSize,
		SortBy:   v.SortField,
		Desc:     v.Desc,
	}
}

// ToggleSort 点击列头
// 同一列切换方向;换列时改为该列升序
func (v *CatalogView) ToggleSort(field string) error {
	if !validSortField(field) {
		return fmt.Errorf("%w: %s", ErrInvalidSortField, field)
	}
	if field == v.SortField {
		v.Desc = !v.Desc
	} else {
		v.SortField = field
		v.Desc = false
	}
	v.Page = 1
	return nil
}

// SetSort 直接设置排序字段与方向(命令行参数使用)
func (v *CatalogView) SetSort(field string, desc bool) error {
	if !validSortField(field) {
		return fmt.Errorf("%w: %s", ErrInvalidSortField, field)
	}
	v.SortField = field
	v.Desc = desc
	v.Page = 1
	return nil
}

// SetCategory 按分类过滤,空字符串表示全部
func (v *CatalogView) SetCategory(category string) {
	v.Category = category
	v.Page = 1
}

// SetPageSize 修改每页数量
func (v *CatalogView) SetPageSize(n int) error {
	if !ValidPageSize(n) {
		return ErrInvalidPageSize
	}
	v.PageSize = n
	v.Page = 1
	return nil
}

// PageCount 总页数 = ceil(totalBooks / pageSize)
func (v *CatalogView) PageCount() int {
	if v.PageSize <= 0 || v.TotalBooks <= 0 {
		return 0
	}
	size := int64(v.PageSize)
	return int((v.TotalBooks + size - 1) / size)
}

func (v *CatalogView) CanPrev() bool {
	return v.Page > 1
}

func (v *CatalogView) CanNext() bool {
	return v.Page < v.PageCount()
}

// Prev 上一页,已是第一页时拒绝
func (v *CatalogView) Prev() error {
	if !v.CanPrev() {
		return ErrPageOutOfRange
	}
	v.Page--
	return nil
}

// Next 下一页,已是最后一页时拒绝
func (v *CatalogView) Next() error {
	if !v.CanNext() {
		return ErrPageOutOfRange
	}
	v.Page++
	return nil
}

// GoTo 跳转到指定页
func (v *CatalogView) GoTo(page int) error {
	if page < 1 || page > max(v.PageCount(), 1) {
		return ErrPageOutOfRange
	}
	v.Page = page
	return nil
}

// Apply 写入一次加载结果
func (v *CatalogView) Apply(page *client.BookPage, err error) {
	if err != nil {
		v.Err = err
		return
	}
	v.Err = nil
	v.Books = page.Books
	v.TotalBooks = page.TotalBooks
}

// ValidPageSize 是否为可选的每页数量
func ValidPageSize(n int) bool {
	for _, opt := range PageSizeOptions {
		if opt == n {
			return true
		}
	}
	return false
}

func validSortField(field string) bool {
	for _, f := range SortFields {
		if f == field {
			return true
		}
	}
	return false
}
