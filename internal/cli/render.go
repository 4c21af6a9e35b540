package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/minibookstore/pkg/client"
)

var columnTitles = map[string]string{
	"title":     "书名",
	"author":    "作者",
	"publisher": "出版社",
	"isbn":      "ISBN",
	"category":  "分类",
	"pageCount": "页数",
	"price":     "价格",
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// FormatPrice 两位小数
func FormatPrice(p decimal.Decimal) string {
	return "$" + p.StringFixed(2)
}

// RenderCatalog 目录表格
// 加载失败时只输出一行错误信息代替表格
func RenderCatalog(w io.Writer, v *CatalogView) error {
	if v.Err != nil {
		_, err := fmt.Fprintf(w, "加载图书失败: %v\n", v.Err)
		return err
	}

	tw := newTable(w)
	headers := make([]string, 0, len(SortFields)+1)
	headers = append(headers, "ID")
	for _, f := range SortFields {
		headers = append(headers, columnTitles[f]+sortIndicator(v, f))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, b := range v.Books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			b.BookID, b.Title, b.Author, b.Publisher, b.ISBN, b.Category, b.PageCount, FormatPrice(b.Price))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, paginationLine(v))
	return err
}

func sortIndicator(v *CatalogView, field string) string {
	if v.SortField != field {
		return ""
	}
	if v.Desc {
		return " ↓"
	}
	return " ↑"
}

// paginationLine 形如 "« 上一页 [1] 2 3 下一页 »  共12本,每页5本"
// 不可用的方向用"-"代替
func paginationLine(v *CatalogView) string {
	var b strings.Builder
	if v.CanPrev() {
		b.WriteString("« 上一页")
	} else {
		b.WriteString("-")
	}
	for i := 1; i <= v.PageCount(); i++ {
		b.WriteByte(' ')
		if i == v.Page {
			b.WriteString("[" + strconv.Itoa(i) + "]")
		} else {
			b.WriteString(strconv.Itoa(i))
		}
	}
	b.WriteByte(' ')
	if v.CanNext() {
		b.WriteString("下一页 »")
	} else {
		b.WriteString("-")
	}
	fmt.Fprintf(&b, "  共%d本,每页%d本", v.TotalBooks, v.PageSize)
	if v.Category != "" {
		fmt.Fprintf(&b, ",分类: %s", v.Category)
	}
	return b.String()
}

// RenderBook 单本图书详情
func RenderBook(w io.Writer, b *client.Book) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%d\n", b.BookID)
	fmt.Fprintf(tw, "书名\t%s\n", b.Title)
	fmt.Fprintf(tw, "作者\t%s\n", b.Author)
	fmt.Fprintf(tw, "出版社\t%s\n", b.Publisher)
	fmt.Fprintf(tw, "ISBN\t%s\n", b.ISBN)
	fmt.Fprintf(tw, "分类\t%s\n", b.Category)
	fmt.Fprintf(tw, "页数\t%d\n", b.PageCount)
	fmt.Fprintf(tw, "价格\t%s\n", FormatPrice(b.Price))
	return tw.Flush()
}

// RenderCart 购物车表格,包含小计与总价
func RenderCart(w io.Writer, lines []client.CartLine, total decimal.Decimal) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "购物车为空。")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\t书名\t单价\t数量\t小计")
	for _, l := range lines {
		subtotal := l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", l.BookID, l.Title, FormatPrice(l.Price), l.Quantity, FormatPrice(subtotal))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "总计: %s\n", FormatPrice(total))
	return err
}

// RenderSummary 服务端购物车汇总
func RenderSummary(w io.Writer, s *client.CartSummary) error {
	if err := RenderCart(w, s.Lines, s.TotalPrice); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "共%d件\n", s.TotalQuantity)
	return err
}

// RenderError 单行错误信息
func RenderError(w io.Writer, err error) {
	fmt.Fprintf(w, "错误: %v\n", err)
}
