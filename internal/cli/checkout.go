package cli

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/clientcart"
	"github.com/xiebiao/minibookstore/pkg/client"
	"github.com/xiebiao/minibookstore/pkg/saga"
)

// ErrEmptyCart 本地购物车为空,无需结算
var ErrEmptyCart = errors.New("购物车为空")

// CartAPI 结算用到的服务端购物车接口(*client.Client实现)
type CartAPI interface {
	Cart(ctx context.Context) ([]client.CartLine, error)
	ReplaceCart(ctx context.Context, lines []client.CartLine) ([]client.CartLine, error)
	CartSummary(ctx context.Context) (*client.CartSummary, error)
}

const checkoutTimeout = 30 * time.Second

// Checkout 结算
// 1. 记下服务端会话购物车原有内容
// 2. 用本地购物车整体替换服务端购物车(失败后恢复原有内容)
// 3. 读取服务端汇总
// 4. 清空本地购物车
// 任一步失败时服务端购物车回到结算前的状态,本地购物车保持不变
func Checkout(ctx context.Context, api CartAPI, cart *clientcart.Store, logger *zap.Logger) (*client.CartSummary, error) {
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		previous []client.CartLine
		summary  *client.CartSummary
	)

	s := saga.NewSaga(checkoutTimeout, logger)
	s.AddStep("读取服务端购物车", func(ctx context.Context) error {
		var err error
		previous, err = api.Cart(ctx)
		return err
	}, nil)
	s.AddStep("同步服务端购物车", func(ctx context.Context) error {
		_, err := api.ReplaceCart(ctx, lines)
		return err
	}, func(ctx context.Context) error {
		_, err := api.ReplaceCart(ctx, previous)
		return err
	})
	s.AddStep("读取结算汇总", func(ctx context.Context) error {
		var err error
		summary, err = api.CartSummary(ctx)
		return err
	}, nil)
	s.AddStep("清空本地购物车", func(context.Context) error {
		return cart.ClearCart()
	}, nil)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}
