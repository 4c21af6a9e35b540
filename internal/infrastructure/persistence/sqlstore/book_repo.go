package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	apperrors "github.com/xiebiao/minibookstore/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一包装为AppError,隐藏底层细节
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// sortColumns 排序字段 → 列名(白名单,防止SQL注入)
var sortColumns = map[book.SortField]string{
	book.SortByTitle:     "title",
	book.SortByAuthor:    "author",
	book.SortByPublisher: "publisher",
	book.SortByISBN:      "isbn",
	book.SortByCategory:  "category",
	book.SortByPageCount: "page_count",
	book.SortByPrice:     "price",
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)
	model.ID = 0

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 整条替换图书
// 存在性检查与写入放在同一事务,保证NotFound判断与写入一致
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing BookModel
		if err := tx.Clauses(lockingClause(tx)...).Select("id").First(&existing, b.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}

		// 使用Save更新所有字段
		if err := tx.Save(toBookModel(b)).Error; err != nil {
			return apperrors.Wrap(err, "更新图书失败")
		}
		return nil
	})
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表
// 1. 按分类精确过滤(区分大小写)
// 2. 先COUNT过滤后的总数,再排序分页
// 3. 排序字段相同时按id升序,保证翻页稳定
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 构建查询
	query := r.db.WithContext(ctx).Model(&BookModel{})
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 排序
	column, ok := sortColumns[params.SortBy]
	if !ok {
		return nil, 0, book.ErrInvalidSort
	}
	query = query.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   params.Order == book.OrderDesc,
	}).Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	// 分页
	query = query.Limit(params.PageSize).Offset(params.Offset())

	// 查询数据
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// ListCategories 去重后的分类列表(升序)
func (r *bookRepository) ListCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&BookModel{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return categories, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		ISBN:      b.ISBN,
		Category:  b.Category,
		PageCount: b.PageCount,
		Price:     b.Price,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Publisher: model.Publisher,
		ISBN:      model.ISBN,
		Category:  model.Category,
		PageCount: model.PageCount,
		Price:     model.Price,
	}
}
