package cart

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Summary 购物车汇总
type Summary struct {
	Lines         []Line
	TotalQuantity int
	TotalPrice    decimal.Decimal
}

// Service 购物车领域服务接口
// 所有操作都以会话ID隔离,不同会话互不影响
type Service interface {
	GetAll(ctx context.Context, sessionID string) ([]Line, error)
	Add(ctx context.Context, sessionID string, line Line) ([]Line, error)
	Remove(ctx context.Context, sessionID string, line Line) ([]Line, error)
	Replace(ctx context.Context, sessionID string, lines []Line) ([]Line, error)
	Clear(ctx context.Context, sessionID string) error
	Summary(ctx context.Context, sessionID string) (*Summary, error)
}

type service struct {
	store Store
}

// NewService 创建购物车领域服务
func NewService(store Store) Service {
	return &service{store: store}
}

// GetAll 按加入顺序返回全部行
func (s *service) GetAll(ctx context.Context, sessionID string) ([]Line, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// Add 加入购物车
func (s *service) Add(ctx context.Context, sessionID string, line Line) ([]Line, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	c, err := s.store.Mutate(ctx, sessionID, func(c *Cart) error {
		return c.Add(line)
	})
	if err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// Remove 数量减一
func (s *service) Remove(ctx context.Context, sessionID string, line Line) ([]Line, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	c, err := s.store.Mutate(ctx, sessionID, func(c *Cart) error {
		c.Remove(line.BookID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// Replace 用客户端购物车整体覆盖会话购物车
func (s *service) Replace(ctx context.Context, sessionID string, lines []Line) ([]Line, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	c, err := s.store.Mutate(ctx, sessionID, func(c *Cart) error {
		return c.Replace(lines)
	})
	if err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// Clear 清空购物车
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionID)
}

// Summary 汇总行、总件数、总价
func (s *service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Lines:         c.Snapshot(),
		TotalQuantity: c.TotalQuantity(),
		TotalPrice:    c.TotalPrice(),
	}, nil
}

func checkSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}
	return nil
}
