package cached

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/pkg/circuitbreaker"
	"github.com/xiebiao/minibookstore/pkg/metrics"
)

// Cache 目录缓存接口，由redis.CacheStore实现
type Cache interface {
	GetBook(ctx context.Context, id uint) (*book.Book, error)
	SetBook(ctx context.Context, b *book.Book) error
	DeleteBook(ctx context.Context, id uint) error
	GetList(ctx context.Context, p book.ListParams) ([]*book.Book, int64, bool, error)
	SetList(ctx context.Context, p book.ListParams, books []*book.Book, total int64) error
	GetCategories(ctx context.Context) ([]string, error)
	SetCategories(ctx context.Context, categories []string) error
	InvalidateLists(ctx context.Context) error
}

// bookRepository 带缓存的图书仓储（装饰器）
// 设计说明:
// 1. 读:先查缓存,未命中查数据库并回填(Cache-Aside)
// 2. 写:先写数据库,成功后删除详情缓存并清空列表/分类缓存
// 3. 缓存调用经过熔断器,缓存故障只记日志,不影响业务结果
// 4. 删除失败(Redis故障或熔断)的key登记为待失效,之后每次操作先重试删除;
//    删除成功前这些key不读也不回填缓存
type bookRepository struct {
	next    book.Repository
	cache   Cache
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger

	mu         sync.Mutex
	seq        uint64
	staleIDs   map[uint]uint64 // 待失效的详情key → 登记序号
	staleLists uint64          // 列表/分类待失效的登记序号,0表示无
}

// NewBookRepository 创建带缓存的图书仓储
func NewBookRepository(next book.Repository, cache Cache, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) book.Repository {
	return &bookRepository{
		next:     next,
		cache:    cache,
		breaker:  breaker,
		logger:   logger,
		staleIDs: make(map[uint]uint64),
	}
}

// Create 新书只影响列表和分类
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := r.next.Create(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, 0)
	return nil
}

// FindByID 详情缓存
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	usable := r.detailUsable(ctx, id)

	var cached *book.Book
	if usable && r.guard("detail", func() error {
		var err error
		cached, err = r.cache.GetBook(ctx, id)
		return err
	}) && cached != nil {
		metrics.ObserveCache("detail", "hit")
		return cached, nil
	}

	b, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !usable {
		metrics.ObserveCache("detail", "bypass")
		return b, nil
	}
	metrics.ObserveCache("detail", "miss")
	r.guard("detail", func() error { return r.cache.SetBook(ctx, b) })
	return b, nil
}

// Update 写库后删除详情缓存并清空列表
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := r.next.Update(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, b.ID)
	return nil
}

// Delete 写库后删除详情缓存并清空列表
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// List 列表缓存（key包含全部查询参数）
func (r *bookRepository) List(ctx context.Context, p book.ListParams) ([]*book.Book, int64, error) {
	var (
		books []*book.Book
		total int64
		hit   bool
	)
	usable := r.listsUsable(ctx)
	if usable && r.guard("list", func() error {
		var err error
		books, total, hit, err = r.cache.GetList(ctx, p)
		return err
	}) && hit {
		metrics.ObserveCache("list", "hit")
		return books, total, nil
	}

	books, total, err := r.next.List(ctx, p)
	if err != nil {
		return nil, 0, err
	}

	if !usable {
		metrics.ObserveCache("list", "bypass")
		return books, total, nil
	}
	metrics.ObserveCache("list", "miss")
	r.guard("list", func() error { return r.cache.SetList(ctx, p, books, total) })
	return books, total, nil
}

// ListCategories 分类缓存
func (r *bookRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	usable := r.listsUsable(ctx)
	if usable && r.guard("categories", func() error {
		var err error
		categories, err = r.cache.GetCategories(ctx)
		return err
	}) && categories != nil {
		metrics.ObserveCache("categories", "hit")
		return categories, nil
	}

	categories, err := r.next.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if !usable {
		metrics.ObserveCache("categories", "bypass")
		return categories, nil
	}
	metrics.ObserveCache("categories", "miss")
	r.guard("categories", func() error { return r.cache.SetCategories(ctx, categories) })
	return categories, nil
}

// invalidate 登记待失效的详情（id>0时）和列表/分类缓存，然后立即尝试删除
func (r *bookRepository) invalidate(ctx context.Context, id uint) {
	r.mu.Lock()
	r.seq++
	if id > 0 {
		r.staleIDs[id] = r.seq
	}
	r.staleLists = r.seq
	r.mu.Unlock()

	r.flush(ctx)
}

// flush 重试待失效的删除
// 删除期间又有新的登记时序号变化，保留登记等下一次重试
func (r *bookRepository) flush(ctx context.Context) {
	r.mu.Lock()
	if len(r.staleIDs) == 0 && r.staleLists == 0 {
		r.mu.Unlock()
		return
	}
	ids := make(map[uint]uint64, len(r.staleIDs))
	for id, seq := range r.staleIDs {
		ids[id] = seq
	}
	lists := r.staleLists
	r.mu.Unlock()

	for id, seq := range ids {
		if !r.guard("detail", func() error { return r.cache.DeleteBook(ctx, id) }) {
			continue
		}
		r.mu.Lock()
		if r.staleIDs[id] == seq {
			delete(r.staleIDs, id)
		}
		r.mu.Unlock()
	}

	if lists > 0 && r.guard("list", func() error { return r.cache.InvalidateLists(ctx) }) {
		r.mu.Lock()
		if r.staleLists == lists {
			r.staleLists = 0
		}
		r.mu.Unlock()
	}
}

// detailUsable 详情缓存没有待失效的删除时才可用
func (r *bookRepository) detailUsable(ctx context.Context, id uint) bool {
	r.flush(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, stale := r.staleIDs[id]
	return !stale
}

// listsUsable 列表和分类缓存没有待失效的删除时才可用
func (r *bookRepository) listsUsable(ctx context.Context) bool {
	r.flush(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.staleLists == 0
}

// guard 通过熔断器执行缓存操作，返回是否成功
func (r *bookRepository) guard(kind string, fn func() error) bool {
	err := r.breaker.Execute(fn)
	switch {
	case err == nil:
		metrics.ObserveBreakerRequest(r.breaker.Name(), "success")
		return true
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.ObserveBreakerRequest(r.breaker.Name(), "rejected")
		metrics.ObserveCache(kind, "bypass")
	default:
		metrics.ObserveBreakerRequest(r.breaker.Name(), "failure")
		metrics.ObserveCache(kind, "error")
		r.logger.Warn("目录缓存操作失败",
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
	return false
}

// 连续失败5次(默认策略)打开熔断器,30秒后探测
const (
	defaultBreakerInterval = time.Minute
	defaultBreakerTimeout  = 30 * time.Second
)

// NewBreaker 创建缓存熔断器，状态变化写日志和监控
func NewBreaker(logger *zap.Logger) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New("catalog-cache", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    defaultBreakerInterval,
		Timeout:     defaultBreakerTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			metrics.SetBreakerState(name, int(to))
		},
	})
}
