package cart

import (
	"context"
)

// Store 购物车存储接口(按会话隔离)
// 设计说明:
// 1. Mutate以"读-改-写"函数的形式提交修改,由实现保证原子性
//    (内存实现用互斥锁,Redis实现用WATCH/MULTI乐观锁)
// 2. 不存在的会话视为空购物车
type Store interface {
	// Get 读取会话购物车
	Get(ctx context.Context, sessionID string) (*Cart, error)

	// Mutate 原子地修改会话购物车,fn返回错误时不落盘
	Mutate(ctx context.Context, sessionID string, fn func(*Cart) error) (*Cart, error)

	// Delete 删除会话购物车
	Delete(ctx context.Context, sessionID string) error
}
