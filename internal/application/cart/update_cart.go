package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/minibookstore/internal/domain/cart"
)

// LineInput 加入/移除购物车的输入
// title/price由客户端提供,作为加入时的快照保存
type LineInput struct {
	BookID   uint
	Title    string
	Price    decimal.Decimal
	Quantity int
}

func (in LineInput) toLine() cart.Line {
	return cart.Line{
		BookID:   in.BookID,
		Title:    in.Title,
		Price:    in.Price,
		Quantity: in.Quantity,
	}
}

// AddToCartUseCase 加入购物车
// 业务规则:
// - 已有同一本书时数量+1(忽略传入数量)
// - 新行使用传入数量,0视为1
type AddToCartUseCase struct {
	cartService cart.Service
}

// NewAddToCartUseCase 创建加购用例
func NewAddToCartUseCase(cartService cart.Service) *AddToCartUseCase {
	return &AddToCartUseCase{cartService: cartService}
}

// Execute 执行加购,返回更新后的全部行
func (uc *AddToCartUseCase) Execute(ctx context.Context, sessionID string, in LineInput) (lines []cart.Line, err error) {
	ctx, span := startSpan(ctx, "AddToCart")
	defer func() { finish(span, "add", err) }()
	span.SetAttributes(attribute.Int64("book.id", int64(in.BookID)))

	return uc.cartService.Add(ctx, sessionID, in.toLine())
}

// RemoveFromCartUseCase 从购物车移除一件
type RemoveFromCartUseCase struct {
	cartService cart.Service
}

// NewRemoveFromCartUseCase 创建移除用例
func NewRemoveFromCartUseCase(cartService cart.Service) *RemoveFromCartUseCase {
	return &RemoveFromCartUseCase{cartService: cartService}
}

// Execute 数量-1,降到0时删除整行;购物车中没有这本书时不做任何修改
func (uc *RemoveFromCartUseCase) Execute(ctx context.Context, sessionID string, in LineInput) (lines []cart.Line, err error) {
	ctx, span := startSpan(ctx, "RemoveFromCart")
	defer func() { finish(span, "remove", err) }()
	span.SetAttributes(attribute.Int64("book.id", int64(in.BookID)))

	return uc.cartService.Remove(ctx, sessionID, in.toLine())
}
