package book

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Book 图书实体
// 设计说明:
// 1. ID由存储层生成,整个生命周期内唯一标识一行
// 2. 价格使用decimal保存(避免浮点数精度问题),不校验非负
// 3. ISBN不做唯一约束,更新为整条记录替换(不支持部分字段修改)
type Book struct {
	ID        uint
	Title     string          // 书名
	Author    string          // 作者
	Publisher string          // 出版社
	ISBN      string          // ISBN号
	Category  string          // 分类
	PageCount int             // 页数
	Price     decimal.Decimal // 价格
}

// NewBook 创建新图书(工厂方法),ID由仓储回填
func NewBook(title, author, publisher, isbn, category string, pageCount int, price decimal.Decimal) *Book {
	return &Book{
		Title:     title,
		Author:    author,
		Publisher: publisher,
		ISBN:      isbn,
		Category:  category,
		PageCount: pageCount,
		Price:     price,
	}
}

// Validate 校验必填字段
// 业务规则:字符串字段不能为空白
func (b *Book) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", b.Title},
		{"author", b.Author},
		{"publisher", b.Publisher},
		{"isbn", b.ISBN},
		{"category", b.Category},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return ErrMissingField(f.name)
		}
	}
	return nil
}
