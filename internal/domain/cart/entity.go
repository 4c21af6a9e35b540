package cart

import (
	"github.com/shopspring/decimal"
)

// Line 购物车行
// title/price为加入时的快照,之后不随图书变化刷新
type Line struct {
	BookID   uint
	Title    string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal 小计 = 单价 × 数量
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart 购物车聚合
// 不变量:
// 1. 同一bookId最多一行
// 2. 每行quantity >= 1,降到0及以下时整行删除
// 3. 行按首次加入的顺序保存
type Cart struct {
	Lines []Line
}

// Add 加入购物车
// 业务规则:
// - 已存在的bookId数量+1(不使用传入的数量)
// - 新行使用传入的数量,0视为1,负数非法
func (c *Cart) Add(line Line) error {
	if line.BookID == 0 {
		return ErrInvalidBookID
	}
	if i := c.indexOf(line.BookID); i >= 0 {
		c.Lines[i].Quantity++
		return nil
	}

	if line.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if line.Quantity == 0 {
		line.Quantity = 1
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// Remove 数量-1,降到0时删除整行;不存在时忽略
func (c *Cart) Remove(bookID uint) {
	i := c.indexOf(bookID)
	if i < 0 {
		return
	}
	c.Lines[i].Quantity--
	if c.Lines[i].Quantity <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Replace 整体替换购物车内容(结算同步时使用)
func (c *Cart) Replace(lines []Line) error {
	seen := make(map[uint]struct{}, len(lines))
	for _, l := range lines {
		if l.BookID == 0 {
			return ErrInvalidBookID
		}
		if l.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if _, ok := seen[l.BookID]; ok {
			return ErrDuplicateLine
		}
		seen[l.BookID] = struct{}{}
	}

	c.Lines = append([]Line(nil), lines...)
	return nil
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Lines = nil
}

// TotalQuantity 商品总件数
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice 总价 = Σ 单价 × 数量
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Snapshot 返回行的副本,调用方修改不影响购物车
func (c *Cart) Snapshot() []Line {
	out := make([]Line, len(c.Lines))
	copy(out, c.Lines)
	return out
}

func (c *Cart) indexOf(bookID uint) int {
	for i, l := range c.Lines {
		if l.BookID == bookID {
			return i
		}
	}
	return -1
}
