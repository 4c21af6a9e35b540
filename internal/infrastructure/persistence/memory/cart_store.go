package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/minibookstore/internal/domain/cart"
)

// CartStore 进程内购物车存储
// 未启用Redis时使用,进程重启后数据丢失
// 所有修改在同一把互斥锁内完成"读-改-写"
type CartStore struct {
	mu    sync.Mutex
	carts map[string][]cart.Line
}

// NewCartStore 创建内存购物车存储
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string][]cart.Line)}
}

// Get 读取会话购物车,返回副本
func (s *CartStore) Get(_ context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(sessionID), nil
}

// Mutate 在锁内修改会话购物车,fn返回错误时保持原状
func (s *CartStore) Mutate(ctx context.Context, sessionID string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.snapshot(sessionID)
	if err := fn(c); err != nil {
		return nil, err
	}

	if len(c.Lines) == 0 {
		delete(s.carts, sessionID)
	} else {
		s.carts[sessionID] = c.Snapshot()
	}
	return c, nil
}

// Delete 删除会话购物车
func (s *CartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *CartStore) snapshot(sessionID string) *cart.Cart {
	lines := s.carts[sessionID]
	c := &cart.Cart{Lines: make([]cart.Line, len(lines))}
	copy(c.Lines, lines)
	return c
}
