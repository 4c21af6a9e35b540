package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/minibookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/minibookstore/pkg/errors"
)

// maxMutateRetries 乐观锁最大重试次数
const maxMutateRetries = 64

// CartStore Redis购物车存储
// 设计说明：
// 1. Key设计：cart:{session_id}，值为JSON行列表
// 2. 修改使用WATCH/MULTI乐观锁，冲突时重试，并发加购不丢更新
// 3. 每次写入刷新过期时间（与购物车会话有效期一致）
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStore 创建Redis购物车存储
func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

// lineRecord 序列化格式
type lineRecord struct {
	BookID   uint            `json:"bookId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Get 读取会话购物车，不存在时返回空购物车
func (s *CartStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := load(ctx, s.client, cartKey(sessionID))
	if err != nil {
		return nil, apperrors.Wrap(err, "读取购物车失败")
	}
	return c, nil
}

// Mutate 原子地修改会话购物车
// 流程：WATCH key → GET → fn修改 → MULTI SET EXEC，EXEC失败（key被并发修改）则重试
func (s *CartStore) Mutate(ctx context.Context, sessionID string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	key := cartKey(sessionID)

	for i := 0; i < maxMutateRetries; i++ {
		var result *cart.Cart
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			c, err := load(ctx, tx, key)
			if err != nil {
				return err
			}
			if err := fn(c); err != nil {
				return err
			}

			val, err := encode(c)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if len(c.Lines) == 0 {
					pipe.Del(ctx, key)
				} else {
					pipe.Set(ctx, key, val, s.ttl)
				}
				return nil
			})
			if err != nil {
				return err
			}
			result = c
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			if apperrors.IsAppError(err) {
				return nil, err // 业务校验错误原样返回
			}
			return nil, apperrors.Wrap(err, "更新购物车失败")
		}
		return result, nil
	}

	return nil, cart.ErrConcurrentUpdate
}

// Delete 删除会话购物车
func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

// cartKey 格式：cart:{session_id}
func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// getter redis.Client与redis.Tx共有的读取方法
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load 从Redis读取并反序列化，redis.Nil视为空购物车
func load(ctx context.Context, cmd getter, key string) (*cart.Cart, error) {
	val, err := cmd.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &cart.Cart{}, nil
		}
		return nil, err
	}

	var records []lineRecord
	if err := json.Unmarshal(val, &records); err != nil {
		return nil, fmt.Errorf("反序列化购物车失败: %w", err)
	}

	c := &cart.Cart{Lines: make([]cart.Line, len(records))}
	for i, r := range records {
		c.Lines[i] = cart.Line{BookID: r.BookID, Title: r.Title, Price: r.Price, Quantity: r.Quantity}
	}
	return c, nil
}

func encode(c *cart.Cart) ([]byte, error) {
	records := make([]lineRecord, len(c.Lines))
	for i, l := range c.Lines {
		records[i] = lineRecord{BookID: l.BookID, Title: l.Title, Price: l.Price, Quantity: l.Quantity}
	}
	return json.Marshal(records)
}
