package dto

import (
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/minibookstore/internal/application/book"
	"github.com/xiebiao/minibookstore/internal/domain/book"
)

func init() {
	// 价格以JSON数字输出(9.99而不是"9.99"),解析时两种形式都接受
	decimal.MarshalJSONWithoutQuotes = true
}

// BookRequest HTTP新增/修改图书请求
// 新增时bookID被忽略;修改时必须与路径ID一致
type BookRequest struct {
	BookID    uint            `json:"bookID" example:"1"`
	Title     string          `json:"title" binding:"required" example:"Dune"`
	Author    string          `json:"author" binding:"required" example:"Frank Herbert"`
	Publisher string          `json:"publisher" binding:"required" example:"Chilton Books"`
	ISBN      string          `json:"isbn" binding:"required" example:"9780441013593"`
	Category  string          `json:"category" binding:"required" example:"Fiction"`
	PageCount int             `json:"pageCount" example:"412"`
	Price     decimal.Decimal `json:"price" swaggertype:"number" example:"9.99"`
}

// ToInput 转换为用例输入
func (r BookRequest) ToInput() appbook.BookInput {
	return appbook.BookInput{
		ID:        r.BookID,
		Title:     r.Title,
		Author:    r.Author,
		Publisher: r.Publisher,
		ISBN:      r.ISBN,
		Category:  r.Category,
		PageCount: r.PageCount,
		Price:     r.Price,
	}
}

// BookResponse HTTP图书响应
type BookResponse struct {
	BookID    uint            `json:"bookID" example:"1"`
	Title     string          `json:"title" example:"Dune"`
	Author    string          `json:"author" example:"Frank Herbert"`
	Publisher string          `json:"publisher" example:"Chilton Books"`
	ISBN      string          `json:"isbn" example:"9780441013593"`
	Category  string          `json:"category" example:"Fiction"`
	PageCount int             `json:"pageCount" example:"412"`
	Price     decimal.Decimal `json:"price" swaggertype:"number" example:"9.99"`
}

// NewBookResponse 领域实体 → HTTP响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		BookID:    b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		ISBN:      b.ISBN,
		Category:  b.Category,
		PageCount: b.PageCount,
		Price:     b.Price,
	}
}

// ListBooksRequest HTTP图书列表请求
// page/pageSize用指针区分"未传"(取默认值)和"传了0"(参数错误)
type ListBooksRequest struct {
	Category string `form:"category" example:"Fiction"`
	Page     *int   `form:"page" example:"1"`
	PageSize *int   `form:"pageSize" example:"5"`
	SortBy   string `form:"sortBy" example:"title" enums:"title,author,publisher,isbn,category,pageCount,price"`
	Order    string `form:"order" example:"asc" enums:"asc,desc"`
}

// ToRequest 补齐默认值(page=1, pageSize=5)后转换为用例请求
func (r ListBooksRequest) ToRequest() appbook.ListBooksRequest {
	page, pageSize := book.DefaultPage, book.DefaultPageSize
	if r.Page != nil {
		page = *r.Page
	}
	if r.PageSize != nil {
		pageSize = *r.PageSize
	}
	return appbook.ListBooksRequest{
		Category: r.Category,
		Page:     page,
		PageSize: pageSize,
		SortBy:   r.SortBy,
		Order:    r.Order,
	}
}

// ListBooksResponse HTTP图书列表响应
type ListBooksResponse struct {
	TotalBooks int64          `json:"totalBooks" example:"12"`
	Books      []BookResponse `json:"books"`
}

// NewListBooksResponse 用例结果 → HTTP响应
func NewListBooksResponse(resp *appbook.ListBooksResponse) ListBooksResponse {
	books := make([]BookResponse, len(resp.Books))
	for i, b := range resp.Books {
		books[i] = NewBookResponse(b)
	}
	return ListBooksResponse{
		TotalBooks: resp.TotalBooks,
		Books:      books,
	}
}
