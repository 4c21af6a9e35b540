package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xiebiao/minibookstore/internal/cli"
	"github.com/xiebiao/minibookstore/pkg/client"
)

func newBooksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "图书目录",
	}
	cmd.AddCommand(
		newBooksListCommand(a),
		newBooksBrowseCommand(a),
		newBooksCategoriesCommand(a),
		newBooksGetCommand(a),
		newBooksAddCommand(a),
		newBooksUpdateCommand(a),
		newBooksDeleteCommand(a),
	)
	return cmd
}

func newBooksListCommand(a *app) *cobra.Command {
	var (
		category string
		page     int
		pageSize int
		sortBy   string
		desc     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "分页列出图书",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := cli.NewCatalogView()
			view.SetCategory(category)
			if err := view.SetPageSize(pageSize); err != nil {
				return err
			}
			if err := view.SetSort(sortBy, desc); err != nil {
				return err
			}
			if page < 1 {
				return fmt.Errorf("页码必须从1开始: %d", page)
			}
			view.Page = page

			ctx, cancel := a.context(cmd)
			defer cancel()
			cli.NewLoader(a.client).Refresh(ctx, view)

			if err := cli.RenderCatalog(a.out, view); err != nil {
				return err
			}
			if view.Err != nil {
				return errReported
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&category, "category", "", "按分类过滤(精确匹配)")
	f.IntVar(&page, "page", 1, "页码")
	f.IntVar(&pageSize, "page-size", cli.DefaultPageSize, "每页数量(5/10/20/50)")
	f.StringVar(&sortBy, "sort", cli.DefaultSortField, "排序字段")
	f.BoolVar(&desc, "desc", false, "降序")
	return cmd
}

func newBooksBrowseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "交互式浏览目录",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 单次请求超时由http.Client控制,浏览会话本身不限时
			return cli.Browse(cmd.Context(), cli.NewLoader(a.client), cli.NewCatalogView(), a.cart, os.Stdin, a.out)
		},
	}
}

func newBooksCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "列出全部分类",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			categories, err := a.client.ListCategories(ctx)
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Fprintln(a.out, c)
			}
			return nil
		},
	}
}

func newBooksGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get BOOK_ID",
		Short: "查看图书详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			b, err := a.client.GetBook(ctx, id)
			if err != nil {
				return err
			}
			return cli.RenderBook(a.out, b)
		},
	}
}

// bookFlags 新增/修改共用的图书字段
type bookFlags struct {
	title     string
	author    string
	publisher string
	isbn      string
	category  string
	pageCount int
	price     string
}

func (f *bookFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "书名")
	fs.StringVar(&f.author, "author", "", "作者")
	fs.StringVar(&f.publisher, "publisher", "", "出版社")
	fs.StringVar(&f.isbn, "isbn", "", "ISBN")
	fs.StringVar(&f.category, "category", "", "分类")
	fs.IntVar(&f.pageCount, "pages", 0, "页数")
	fs.StringVar(&f.price, "price", "0", "价格")
}

// apply 把命令行上出现过的字段写入b
func (f *bookFlags) apply(cmd *cobra.Command, b *client.Book) error {
	changed := cmd.Flags().Changed
	if changed("title") {
		b.Title = f.title
	}
	if changed("author") {
		b.Author = f.author
	}
	if changed("publisher") {
		b.Publisher = f.publisher
	}
	if changed("isbn") {
		b.ISBN = f.isbn
	}
	if changed("category") {
		b.Category = f.category
	}
	if changed("pages") {
		b.PageCount = f.pageCount
	}
	if changed("price") {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return fmt.Errorf("无效的价格: %s", f.price)
		}
		b.Price = price
	}
	return nil
}

func newBooksAddCommand(a *app) *cobra.Command {
	var f bookFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "新增图书",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var b client.Book
			if err := f.apply(cmd, &b); err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			created, err := a.client.CreateBook(ctx, b)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "已新增图书 %d\n", created.BookID)
			return cli.RenderBook(a.out, created)
		},
	}
	f.register(cmd)
	for _, name := range []string{"title", "author", "publisher", "isbn", "category"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newBooksUpdateCommand(a *app) *cobra.Command {
	var f bookFlags
	cmd := &cobra.Command{
		Use:   "update BOOK_ID",
		Short: "修改图书(只修改命令行上给出的字段)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			b, err := a.client.GetBook(ctx, id)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, b); err != nil {
				return err
			}
			if err := a.client.UpdateBook(ctx, *b); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "已修改图书 %d\n", id)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newBooksDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete BOOK_ID",
		Short: "删除图书",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := a.client.DeleteBook(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "已删除图书 %d\n", id)
			return nil
		},
	}
}
