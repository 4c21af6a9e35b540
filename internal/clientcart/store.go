package clientcart

import (
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/pkg/client"
)

// StorageKey 购物车在本地存储中的键
const StorageKey = "cart"

// Store 客户端购物车
// 不变量:
// 1. 同一bookId最多一行,行按首次加入的顺序保存
// 2. 每次修改后把全部行以JSON数组写回本地存储
// 3. 构造时从本地存储恢复一次,数据缺失或损坏时为空购物车
type Store struct {
	mu      sync.Mutex
	lines   []client.CartLine
	storage LocalStorage
	logger  *zap.Logger
}

// NewStore 创建购物车并从本地存储恢复
func NewStore(storage LocalStorage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{storage: storage, logger: logger}
	s.lines = s.rehydrate()
	return s
}

func (s *Store) rehydrate() []client.CartLine {
	raw, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		s.logger.Warn("读取本地购物车失败,使用空购物车", zap.Error(err))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var lines []client.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logger.Warn("本地购物车数据损坏,使用空购物车", zap.Error(err))
		return nil
	}
	return lines
}

// Lines 当前购物车行(副本)
func (s *Store) Lines() []client.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]client.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// AddToCart 加入购物车
// 已存在时数量+1(忽略传入的数量),否则以数量1追加
func (s *Store) AddToCart(item client.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(func() {
		if i := s.indexOf(item.BookID); i >= 0 {
			s.lines[i].Quantity++
		} else {
			item.Quantity = 1
			s.lines = append(s.lines, item)
		}
	})
}

// RemoveFromCart 删除整行
func (s *Store) RemoveFromCart(bookID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(func() {
		if i := s.indexOf(bookID); i >= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
	})
}

// UpdateQuantity 设置数量,n <= 0时删除整行
func (s *Store) UpdateQuantity(bookID uint, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(func() {
		if i := s.indexOf(bookID); i >= 0 {
			if n <= 0 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			} else {
				s.lines[i].Quantity = n
			}
		}
	})
}

// ClearCart 清空
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(func() { s.lines = nil })
}

// TotalPrice 总价 = Σ 单价 × 数量,每次读取时重新计算
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// TotalQuantity 总件数
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) indexOf(bookID uint) int {
	for i, l := range s.lines {
		if l.BookID == bookID {
			return i
		}
	}
	return -1
}

// mutate 修改后写回本地存储,写入失败时恢复修改前的行,内存与存储保持一致
// 调用方需持有锁
func (s *Store) mutate(fn func()) error {
	prev := append([]client.CartLine(nil), s.lines...)
	fn()
	if err := s.persist(); err != nil {
		s.lines = prev
		return err
	}
	return nil
}

// persist 调用方需持有锁
func (s *Store) persist() error {
	lines := s.lines
	if lines == nil {
		lines = []client.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.storage.SetItem(StorageKey, string(data))
}
