package dto

import (
	"github.com/shopspring/decimal"

	appcart "github.com/xiebiao/minibookstore/internal/application/cart"
	"github.com/xiebiao/minibookstore/internal/domain/cart"
)

// CartLine HTTP购物车行(请求和响应共用)
type CartLine struct {
	BookID   uint            `json:"bookId" binding:"required" example:"1"`
	Title    string          `json:"title" example:"Dune"`
	Price    decimal.Decimal `json:"price" swaggertype:"number" example:"9.99"`
	Quantity int             `json:"quantity" example:"1"`
}

// ToInput 转换为用例输入
func (l CartLine) ToInput() appcart.LineInput {
	return appcart.LineInput{
		BookID:   l.BookID,
		Title:    l.Title,
		Price:    l.Price,
		Quantity: l.Quantity,
	}
}

// ToInputs 批量转换
func ToInputs(lines []CartLine) []appcart.LineInput {
	out := make([]appcart.LineInput, len(lines))
	for i, l := range lines {
		out[i] = l.ToInput()
	}
	return out
}

// NewCartLines 领域行 → HTTP响应,空购物车返回[]而不是null
func NewCartLines(lines []cart.Line) []CartLine {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = CartLine{
			BookID:   l.BookID,
			Title:    l.Title,
			Price:    l.Price,
			Quantity: l.Quantity,
		}
	}
	return out
}

// CartSummaryResponse 购物车汇总
type CartSummaryResponse struct {
	Lines         []CartLine      `json:"lines"`
	TotalQuantity int             `json:"totalQuantity" example:"3"`
	TotalPrice    decimal.Decimal `json:"totalPrice" swaggertype:"number" example:"35.48"`
}

// NewCartSummaryResponse 领域汇总 → HTTP响应
func NewCartSummaryResponse(s *cart.Summary) CartSummaryResponse {
	return CartSummaryResponse{
		Lines:         NewCartLines(s.Lines),
		TotalQuantity: s.TotalQuantity,
		TotalPrice:    s.TotalPrice,
	}
}
