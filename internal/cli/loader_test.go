package cli

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/minibookstore/pkg/client"
)

type listerFunc func(ctx context.Context, p client.ListParams) (*client.BookPage, error)

func (f listerFunc) ListBooks(ctx context.Context, p client.ListParams) (*client.BookPage, error) {
	return f(ctx, p)
}

func TestLoader_Refresh(t *testing.T) {
	var got client.ListParams
	l := NewLoader(listerFunc(func(_ context.Context, p client.ListParams) (*client.BookPage, error) {
		got = p
		return &client.BookPage{TotalBooks: 7, Books: []client.Book{{BookID: 1}}}, nil
	}))

	v := NewCatalogView()
	v.SetCategory("Fiction")
	require.True(t, l.Refresh(context.Background(), v))

	assert.Equal(t, v.Params(), got)
	assert.EqualValues(t, 7, v.TotalBooks)
	assert.Equal(t, 2, v.PageCount())
	assert.NoError(t, v.Err)
}

func TestLoader_RefreshError(t *testing.T) {
	boom := errors.New("connection refused")
	l := NewLoader(listerFunc(func(context.Context, client.ListParams) (*client.BookPage, error) {
		return nil, boom
	}))

	v := NewCatalogView()
	require.True(t, l.Refresh(context.Background(), v))
	assert.ErrorIs(t, v.Err, boom)
}

func TestLoader_LatestRequestWins(t *testing.T) {
	started := make(chan context.Context, 1)
	release := make(chan struct{})

	l := NewLoader(listerFunc(func(ctx context.Context, p client.ListParams) (*client.BookPage, error) {
		if p.Page == 1 {
			started <- ctx
			<-release
			return &client.BookPage{TotalBooks: 1}, nil
		}
		return &client.BookPage{TotalBooks: 2}, nil
	}))

	var (
		wg      sync.WaitGroup
		first   LoadResult
		firstOK bool
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstOK = l.Load(context.Background(), client.ListParams{Page: 1})
	}()
	firstCtx := <-started

	second, ok := l.Load(context.Background(), client.ListParams{Page: 2})
	require.True(t, ok)
	assert.EqualValues(t, 2, second.Seq)
	assert.EqualValues(t, 2, second.Page.TotalBooks)

	// 发起新请求时上一次请求被取消
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)

	close(release)
	wg.Wait()

	// 晚到的旧结果被丢弃
	assert.False(t, firstOK)
	assert.EqualValues(t, 1, first.Seq)
	assert.Nil(t, first.Page)
}

func TestLoader_StaleResultDoesNotTouchView(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	l := NewLoader(listerFunc(func(ctx context.Context, p client.ListParams) (*client.BookPage, error) {
		if p.PageSize == 5 {
			close(started)
			<-release
			return &client.BookPage{TotalBooks: 100}, nil
		}
		return &client.BookPage{TotalBooks: 3}, nil
	}))

	stale := NewCatalogView()
	done := make(chan bool)
	go func() {
		done <- l.Refresh(context.Background(), stale)
	}()
	<-started

	fresh := NewCatalogView()
	require.NoError(t, fresh.SetPageSize(10))
	require.True(t, l.Refresh(context.Background(), fresh))

	close(release)
	assert.False(t, <-done)
	assert.Zero(t, stale.TotalBooks)
	assert.EqualValues(t, 3, fresh.TotalBooks)
}

func TestLoader_Close(t *testing.T) {
	started := make(chan struct{})
	l := NewLoader(listerFunc(func(ctx context.Context, _ client.ListParams) (*client.BookPage, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}))

	done := make(chan LoadResult)
	go func() {
		res, _ := l.Load(context.Background(), client.ListParams{})
		done <- res
	}()
	<-started
	l.Close()

	res := <-done
	assert.ErrorIs(t, res.Err, context.Canceled)
}
