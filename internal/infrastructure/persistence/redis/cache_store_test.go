package redis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/minibookstore/internal/domain/book"
)

func TestCacheStore_Book(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	cache := NewCacheStore(client, 10*time.Minute, time.Minute)

	// 未命中
	b, err := cache.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, b)

	want := book.NewBook("Dune", "Frank Herbert", "Chilton", "9780441013593", "Fiction", 412, decimal.RequireFromString("9.99"))
	want.ID = 1
	require.NoError(t, cache.SetBook(ctx, want))
	assert.Equal(t, 10*time.Minute, mr.TTL("catalog:detail:1"))

	got, err := cache.GetBook(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Title, got.Title)
	assert.True(t, want.Price.Equal(got.Price))

	require.NoError(t, cache.DeleteBook(ctx, 1))
	got, err = cache.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheStore_ListAndInvalidate(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	cache := NewCacheStore(client, 10*time.Minute, time.Minute)

	p := book.ListParams{Category: "Sci:Fi", Page: 1, PageSize: 5, SortBy: book.SortByTitle, Order: book.OrderAsc}
	_, _, hit, err := cache.GetList(ctx, p)
	require.NoError(t, err)
	assert.False(t, hit)

	books := []*book.Book{{ID: 1, Title: "A", Price: decimal.NewFromInt(3)}}
	require.NoError(t, cache.SetList(ctx, p, books, 12))
	require.NoError(t, cache.SetCategories(ctx, []string{"Sci:Fi"}))
	assert.True(t, mr.Exists("catalog:list:Sci%3AFi:1:5:title:asc"))

	got, total, hit, err := cache.GetList(ctx, p)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(12), total)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)

	categories, err := cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci:Fi"}, categories)

	// 详情缓存不受列表失效影响
	require.NoError(t, cache.SetBook(ctx, &book.Book{ID: 9, Title: "keep"}))
	require.NoError(t, cache.InvalidateLists(ctx))

	_, _, hit, err = cache.GetList(ctx, p)
	require.NoError(t, err)
	assert.False(t, hit)
	categories, err = cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.Nil(t, categories)
	assert.True(t, mr.Exists("catalog:detail:9"))
}
