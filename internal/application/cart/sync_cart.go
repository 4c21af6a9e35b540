package cart

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/minibookstore/internal/domain/cart"
)

// ReplaceCartUseCase 结算时用客户端购物车覆盖会话购物车
// 客户端购物车在浏览期间是权威数据,结算时才显式同步到服务端
type ReplaceCartUseCase struct {
	cartService cart.Service
}

// NewReplaceCartUseCase 创建同步用例
func NewReplaceCartUseCase(cartService cart.Service) *ReplaceCartUseCase {
	return &ReplaceCartUseCase{cartService: cartService}
}

// Execute 校验并整体替换(quantity>=1,bookId不重复)
func (uc *ReplaceCartUseCase) Execute(ctx context.Context, sessionID string, in []LineInput) (lines []cart.Line, err error) {
	ctx, span := startSpan(ctx, "ReplaceCart")
	defer func() { finish(span, "replace", err) }()
	span.SetAttributes(attribute.Int("cart.lines", len(in)))

	replacement := make([]cart.Line, len(in))
	for i, l := range in {
		replacement[i] = l.toLine()
	}
	return uc.cartService.Replace(ctx, sessionID, replacement)
}

// ClearCartUseCase 清空会话购物车
type ClearCartUseCase struct {
	cartService cart.Service
}

// NewClearCartUseCase 创建清空用例
func NewClearCartUseCase(cartService cart.Service) *ClearCartUseCase {
	return &ClearCartUseCase{cartService: cartService}
}

// Execute 清空
func (uc *ClearCartUseCase) Execute(ctx context.Context, sessionID string) (err error) {
	ctx, span := startSpan(ctx, "ClearCart")
	defer func() { finish(span, "clear", err) }()

	return uc.cartService.Clear(ctx, sessionID)
}
