package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/minibookstore/internal/domain/book"
)

// CacheStore 图书目录缓存
// 设计说明：
// 1. Cache-Aside（旁路缓存）：先查缓存，未命中再查数据库并回填
// 2. 写操作后删除缓存而不是更新缓存，下次查询重新加载
// 3. 列表和分类依赖全部数据，任意写操作都清空
type CacheStore struct {
	client    *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

// NewCacheStore 创建缓存存储实例
func NewCacheStore(client *redis.Client, detailTTL, listTTL time.Duration) *CacheStore {
	return &CacheStore{
		client:    client,
		detailTTL: detailTTL,
		listTTL:   listTTL,
	}
}

// bookRecord 缓存序列化格式
type bookRecord struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher"`
	ISBN      string          `json:"isbn"`
	Category  string          `json:"category"`
	PageCount int             `json:"pageCount"`
	Price     decimal.Decimal `json:"price"`
}

type listRecord struct {
	Books []bookRecord `json:"books"`
	Total int64        `json:"total"`
}

// GetBook 获取图书详情缓存，未命中返回(nil, nil)
func (c *CacheStore) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	var r bookRecord
	hit, err := c.getJSON(ctx, bookDetailKey(id), &r)
	if err != nil || !hit {
		return nil, err
	}
	return r.toEntity(), nil
}

// SetBook 设置图书详情缓存
func (c *CacheStore) SetBook(ctx context.Context, b *book.Book) error {
	return c.setJSON(ctx, bookDetailKey(b.ID), fromEntity(b), c.detailTTL)
}

// DeleteBook 删除图书详情缓存
func (c *CacheStore) DeleteBook(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookDetailKey(id)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// GetList 获取列表缓存，hit=false表示未命中
func (c *CacheStore) GetList(ctx context.Context, p book.ListParams) ([]*book.Book, int64, bool, error) {
	var r listRecord
	hit, err := c.getJSON(ctx, bookListKey(p), &r)
	if err != nil || !hit {
		return nil, 0, false, err
	}

	books := make([]*book.Book, len(r.Books))
	for i := range r.Books {
		books[i] = r.Books[i].toEntity()
	}
	return books, r.Total, true, nil
}

// SetList 设置列表缓存
func (c *CacheStore) SetList(ctx context.Context, p book.ListParams, books []*book.Book, total int64) error {
	r := listRecord{Books: make([]bookRecord, len(books)), Total: total}
	for i, b := range books {
		r.Books[i] = fromEntity(b)
	}
	return c.setJSON(ctx, bookListKey(p), r, c.listTTL)
}

// GetCategories 获取分类缓存，未命中返回(nil, nil)
func (c *CacheStore) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	hit, err := c.getJSON(ctx, categoriesKey, &categories)
	if err != nil || !hit {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// SetCategories 设置分类缓存
func (c *CacheStore) SetCategories(ctx context.Context, categories []string) error {
	return c.setJSON(ctx, categoriesKey, categories, c.listTTL)
}

// InvalidateLists 删除所有列表缓存和分类缓存
// 使用SCAN遍历匹配的key，UNLINK异步删除不阻塞
func (c *CacheStore) InvalidateLists(ctx context.Context) error {
	keys := []string{categoriesKey}

	iter := c.client.Scan(ctx, 0, "catalog:list:*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("扫描缓存key失败: %w", err)
	}

	if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

func (c *CacheStore) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // 缓存未命中
		}
		return false, fmt.Errorf("获取缓存失败: %w", err)
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("反序列化失败: %w", err)
	}
	return true, nil
}

func (c *CacheStore) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

const categoriesKey = "catalog:categories"

// bookDetailKey 格式：catalog:detail:{book_id}
func bookDetailKey(id uint) string {
	return fmt.Sprintf("catalog:detail:%d", id)
}

// bookListKey 格式：catalog:list:{category}:{page}:{pageSize}:{sortBy}:{order}
// 分类经过URL编码，避免其中的冒号破坏key结构
func bookListKey(p book.ListParams) string {
	return fmt.Sprintf("catalog:list:%s:%d:%d:%s:%s",
		url.QueryEscape(p.Category), p.Page, p.PageSize, p.SortBy, p.Order)
}

func fromEntity(b *book.Book) bookRecord {
	return bookRecord{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Publisher: b.Publisher,
		ISBN:      b.ISBN,
		Category:  b.Category,
		PageCount: b.PageCount,
		Price:     b.Price,
	}
}

func (r bookRecord) toEntity() *book.Book {
	return &book.Book{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		Publisher: r.Publisher,
		ISBN:      r.ISBN,
		Category:  r.Category,
		PageCount: r.PageCount,
		Price:     r.Price,
	}
}
