package cli

import (
	"context"
	"sync"

	"github.com/xiebiao/minibookstore/pkg/client"
)

// BookLister 列表数据源(*client.Client实现)
type BookLister interface {
	ListBooks(ctx context.Context, p client.ListParams) (*client.BookPage, error)
}

// LoadResult 一次加载的结果
type LoadResult struct {
	Seq  uint64
	Page *client.BookPage
	Err  error
}

// Loader 目录加载器,后发起的请求胜出
// 每次Load分配递增的序号并取消上一次仍在进行的请求;
// 返回时如果已有更新的请求发起,结果被丢弃
type Loader struct {
	lister BookLister

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewLoader(lister BookLister) *Loader {
	return &Loader{lister: lister}
}

// Load 加载一页
// ok=false表示结果已过期,调用方不应使用
func (l *Loader) Load(ctx context.Context, params client.ListParams) (LoadResult, bool) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	page, err := l.lister.ListBooks(ctx, params)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		// 已被更新的请求取代
		return LoadResult{Seq: seq}, false
	}
	l.cancel = nil
	return LoadResult{Seq: seq, Page: page, Err: err}, true
}

// Refresh 按视图当前状态加载并写回视图
// 返回false表示结果已过期被丢弃,视图未修改
func (l *Loader) Refresh(ctx context.Context, view *CatalogView) bool {
	res, ok := l.Load(ctx, view.Params())
	if !ok {
		return false
	}
	view.Apply(res.Page, res.Err)
	return true
}

// Close 取消进行中的请求
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
