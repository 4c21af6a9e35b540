package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/minibookstore/internal/domain/book"
	"github.com/xiebiao/minibookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/minibookstore/pkg/circuitbreaker"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, b *book.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) List(ctx context.Context, p book.ListParams) ([]*book.Book, int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]*book.Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func setup(t *testing.T) (*mockRepo, book.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	next := new(mockRepo)
	repo := NewBookRepository(next, redis.NewCacheStore(client, time.Minute, time.Minute), NewBreaker(zap.NewNop()), zap.NewNop())
	return next, repo, mr
}

func dune() *book.Book {
	return &book.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Fiction", PageCount: 412, Price: decimal.RequireFromString("9.99")}
}

// TestFindByID_SecondReadFromCache 第二次读取走缓存,不再查库
func TestFindByID_SecondReadFromCache(t *testing.T) {
	ctx := context.Background()
	next, repo, _ := setup(t)
	next.On("FindByID", ctx, uint(1)).Return(dune(), nil).Once()

	first, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.True(t, first.Price.Equal(second.Price))
	next.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestFindByID_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	next, repo, mr := setup(t)
	next.On("FindByID", ctx, uint(404)).Return(nil, book.ErrBookNotFound)

	_, err := repo.FindByID(ctx, 404)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.False(t, mr.Exists("catalog:detail:404"))
}

// TestWriteInvalidates 写操作删除详情缓存并清空列表缓存
func TestWriteInvalidates(t *testing.T) {
	ctx := context.Background()
	next, repo, mr := setup(t)
	params := book.ListParams{Page: 1, PageSize: 5, SortBy: book.SortByTitle, Order: book.OrderAsc}

	next.On("FindByID", ctx, uint(1)).Return(dune(), nil)
	next.On("List", ctx, params).Return([]*book.Book{dune()}, int64(1), nil)
	next.On("ListCategories", ctx).Return([]string{"Fiction"}, nil)
	next.On("Update", ctx, mock.Anything).Return(nil)

	_, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	_, _, err = repo.List(ctx, params)
	require.NoError(t, err)
	_, err = repo.ListCategories(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("catalog:detail:1"))
	require.True(t, mr.Exists("catalog:categories"))

	// 缓存命中,不查库
	_, _, err = repo.List(ctx, params)
	require.NoError(t, err)
	next.AssertNumberOfCalls(t, "List", 1)

	require.NoError(t, repo.Update(ctx, dune()))
	assert.False(t, mr.Exists("catalog:detail:1"))
	assert.False(t, mr.Exists("catalog:categories"))
	assert.Empty(t, mr.Keys())

	// 失效后重新查库
	_, _, err = repo.List(ctx, params)
	require.NoError(t, err)
	next.AssertNumberOfCalls(t, "List", 2)
}

func TestWriteErrorKeepsCache(t *testing.T) {
	ctx := context.Background()
	next, repo, mr := setup(t)

	next.On("FindByID", ctx, uint(1)).Return(dune(), nil)
	next.On("Delete", ctx, uint(1)).Return(book.ErrBookNotFound)

	_, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Delete(ctx, 1), book.ErrBookNotFound)
	assert.True(t, mr.Exists("catalog:detail:1"))
}

// TestRedisDown_FallsBackAndOpensBreaker Redis故障时直接查库,连续失败后熔断
func TestRedisDown_FallsBackAndOpensBreaker(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	next := new(mockRepo)
	breaker := NewBreaker(zap.NewNop())
	repo := NewBookRepository(next, redis.NewCacheStore(client, time.Minute, time.Minute), breaker, zap.NewNop())
	next.On("FindByID", ctx, uint(1)).Return(dune(), nil)

	mr.Close()

	for i := 0; i < 5; i++ {
		b, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
	}
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())

	// 熔断后仍然能从数据库读取
	b, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
}

// TestInvalidateFailure_RetriedBeforeNextRead 失效时Redis出错,下一次读取先补删缓存
func TestInvalidateFailure_RetriedBeforeNextRead(t *testing.T) {
	ctx := context.Background()
	next, repo, mr := setup(t)
	params := book.ListParams{Page: 1, PageSize: 5, SortBy: book.SortByTitle, Order: book.OrderAsc}

	next.On("FindByID", ctx, uint(1)).Return(dune(), nil).Once()
	next.On("FindByID", ctx, uint(1)).Return(nil, book.ErrBookNotFound)
	next.On("List", ctx, params).Return([]*book.Book{dune()}, int64(1), nil).Once()
	next.On("List", ctx, params).Return([]*book.Book{}, int64(0), nil)
	next.On("Delete", ctx, uint(1)).Return(nil)

	_, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	_, _, err = repo.List(ctx, params)
	require.NoError(t, err)
	require.True(t, mr.Exists("catalog:detail:1"))

	mr.SetError("blip")
	require.NoError(t, repo.Delete(ctx, 1))
	mr.SetError("")

	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.False(t, mr.Exists("catalog:detail:1"))

	books, total, err := repo.List(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Zero(t, total)
}

// TestInvalidateWhileBreakerOpen 熔断期间的更新在熔断恢复后不会读到旧缓存
func TestInvalidateWhileBreakerOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	breaker := circuitbreaker.New("test-cache", circuitbreaker.Config{Timeout: 50 * time.Millisecond})
	next := new(mockRepo)
	repo := NewBookRepository(next, redis.NewCacheStore(client, time.Minute, time.Minute), breaker, zap.NewNop())

	updated := dune()
	updated.Title = "Dune (2nd ed)"
	next.On("FindByID", ctx, uint(1)).Return(dune(), nil).Once()
	next.On("FindByID", ctx, uint(1)).Return(updated, nil)
	next.On("Update", ctx, updated).Return(nil)

	_, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists("catalog:detail:1"))

	for i := 0; i < 5; i++ {
		_ = breaker.Execute(func() error { return errors.New("redis down") })
	}
	require.Equal(t, circuitbreaker.StateOpen, breaker.State())

	require.NoError(t, repo.Update(ctx, updated))
	assert.True(t, mr.Exists("catalog:detail:1"))

	b, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune (2nd ed)", b.Title)

	// 半开后先补删旧缓存,再读
	time.Sleep(80 * time.Millisecond)
	b, err = repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune (2nd ed)", b.Title)
	assert.Equal(t, circuitbreaker.StateClosed, breaker.State())

	b, err = repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune (2nd ed)", b.Title)
}
