package cart

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/minibookstore/internal/domain/cart"
	"github.com/xiebiao/minibookstore/pkg/metrics"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

const tracerName = "cart"

// GetCartUseCase 查询会话购物车
type GetCartUseCase struct {
	cartService cart.Service
}

// NewGetCartUseCase 创建查询用例
func NewGetCartUseCase(cartService cart.Service) *GetCartUseCase {
	return &GetCartUseCase{cartService: cartService}
}

// Execute 按加入顺序返回全部行,新会话返回空列表
func (uc *GetCartUseCase) Execute(ctx context.Context, sessionID string) (lines []cart.Line, err error) {
	ctx, span := startSpan(ctx, "GetCart")
	defer func() { finish(span, "get", err) }()

	return uc.cartService.GetAll(ctx, sessionID)
}

// CartSummaryUseCase 购物车汇总(行、总件数、总价)
type CartSummaryUseCase struct {
	cartService cart.Service
}

// NewCartSummaryUseCase 创建汇总用例
func NewCartSummaryUseCase(cartService cart.Service) *CartSummaryUseCase {
	return &CartSummaryUseCase{cartService: cartService}
}

// Execute 汇总当前会话购物车
func (uc *CartSummaryUseCase) Execute(ctx context.Context, sessionID string) (summary *cart.Summary, err error) {
	ctx, span := startSpan(ctx, "CartSummary")
	defer func() { finish(span, "summary", err) }()

	return uc.cartService.Summary(ctx, sessionID)
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracing.StartSpan(ctx, tracerName, name)
}

// finish 结束Span并记录操作指标
func finish(span trace.Span, op string, err error) {
	metrics.ObserveCartOperation(op, err)
	tracing.EndSpan(span, err)
}
