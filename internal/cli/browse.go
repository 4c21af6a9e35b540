package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xiebiao/minibookstore/internal/clientcart"
	"github.com/xiebiao/minibookstore/pkg/client"
)

const browseHelp = `命令:
  n            下一页
  p            上一页
  g N          跳到第N页
  s FIELD      按FIELD排序(再次输入同一字段切换升降序)
  size N       每页数量(5/10/20/50)
  c [分类]     按分类过滤,不带参数时显示全部
  a ID         把当前页的图书加入购物车
  q            退出`

// Browse 交互式浏览目录
// 每条命令修改视图状态后重新加载当前页;命令本身非法时只提示错误,不重新加载
// a命令只写本地购物车并输出一行提示,不重新加载
func Browse(ctx context.Context, loader *Loader, view *CatalogView, cart *clientcart.Store, in io.Reader, out io.Writer) error {
	defer loader.Close()

	loader.Refresh(ctx, view)
	if err := RenderCatalog(out, view); err != nil {
		return err
	}
	fmt.Fprintln(out, browseHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "q" {
			return nil
		}
		if fields[0] == "a" {
			if err := addFromPage(view, cart, fields[1:], out); err != nil {
				RenderError(out, err)
			}
			continue
		}

		if err := applyCommand(view, fields); err != nil {
			RenderError(out, err)
			continue
		}
		loader.Refresh(ctx, view)
		if err := RenderCatalog(out, view); err != nil {
			return err
		}
	}
}

func applyCommand(view *CatalogView, fields []string) error {
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "n":
		return view.Next()
	case "p":
		return view.Prev()
	case "g":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return view.GoTo(n)
	case "s":
		if len(args) != 1 {
			return fmt.Errorf("用法: s FIELD (%s)", strings.Join(SortFields, "/"))
		}
		return view.ToggleSort(args[0])
	case "size":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return view.SetPageSize(n)
	case "c":
		view.SetCategory(strings.Join(args, " "))
		return nil
	default:
		return fmt.Errorf("未知命令: %s", cmd)
	}
}

// addFromPage 书名和单价取当前页展示的快照
func addFromPage(view *CatalogView, cart *clientcart.Store, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("用法: a ID")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("无效的图书ID: %s", args[0])
	}
	for _, b := range view.Books {
		if b.BookID != uint(id) {
			continue
		}
		if err := cart.AddToCart(client.CartLine{BookID: b.BookID, Title: b.Title, Price: b.Price}); err != nil {
			return err
		}
		fmt.Fprintf(out, "已加入购物车: %s\n", b.Title)
		return nil
	}
	return fmt.Errorf("当前页没有图书: %d", id)
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("需要一个数字参数")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("不是数字: %s", args[0])
	}
	return n, nil
}
