package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xiebiao/minibookstore/internal/cli"
	"github.com/xiebiao/minibookstore/pkg/client"
)

func newCartCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "本地购物车",
	}
	cmd.AddCommand(
		newCartShowCommand(a),
		newCartAddCommand(a),
		newCartRemoveCommand(a),
		newCartSetCommand(a),
		newCartClearCommand(a),
		newCartCheckoutCommand(a),
	)
	return cmd
}

func (a *app) renderLocalCart() error {
	return cli.RenderCart(a.out, a.cart.Lines(), a.cart.TotalPrice())
}

func newCartShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "查看本地购物车",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.renderLocalCart()
		},
	}
}

func newCartAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add BOOK_ID",
		Short: "加入购物车(已存在时数量+1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}

			// 书名和单价取加入时的快照
			ctx, cancel := a.context(cmd)
			defer cancel()
			b, err := a.client.GetBook(ctx, id)
			if err != nil {
				return err
			}

			if err := a.cart.AddToCart(client.CartLine{BookID: b.BookID, Title: b.Title, Price: b.Price}); err != nil {
				return err
			}
			return a.renderLocalCart()
		},
	}
}

func newCartRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove BOOK_ID",
		Short: "从购物车删除整行",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			if err := a.cart.RemoveFromCart(id); err != nil {
				return err
			}
			return a.renderLocalCart()
		},
	}
}

func newCartSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set BOOK_ID QTY",
		Short: "设置数量(0或负数时删除整行)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("无效的数量: %s", args[1])
			}
			if err := a.cart.UpdateQuantity(id, qty); err != nil {
				return err
			}
			return a.renderLocalCart()
		},
	}
}

func newCartClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "清空本地购物车",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := a.cart.ClearCart(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "购物车已清空。")
			return nil
		},
	}
}

// newCartCheckoutCommand 结算:本地购物车同步到服务端会话购物车,输出汇总后清空本地购物车
func newCartCheckoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "结算:同步到服务端购物车并输出汇总",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := cli.Checkout(cmd.Context(), a.client, a.cart, a.logger)
			if errors.Is(err, cli.ErrEmptyCart) {
				fmt.Fprintln(a.out, "购物车为空。")
				return nil
			}
			if err != nil {
				return err
			}
			return cli.RenderSummary(a.out, summary)
		},
	}
}
