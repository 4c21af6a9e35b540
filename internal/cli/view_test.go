package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/minibookstore/pkg/client"
)

func TestNewCatalogView_Defaults(t *testing.T) {
	v := NewCatalogView()

	p := v.Params()
	assert.Equal(t, client.ListParams{Page: 1, PageSize: 5, SortBy: "title"}, p)
	assert.Zero(t, v.PageCount())
	assert.False(t, v.CanPrev())
	assert.False(t, v.CanNext())
}

func TestCatalogView_ToggleSort(t *testing.T) {
	v := NewCatalogView()
	v.Page = 3

	// 同一列切换方向
	require.NoError(t, v.ToggleSort("title"))
	assert.Equal(t, "title", v.SortField)
	assert.True(t, v.Desc)
	assert.Equal(t, 1, v.Page)

	require.NoError(t, v.ToggleSort("title"))
	assert.False(t, v.Desc)

	// 换列时升序
	require.NoError(t, v.ToggleSort("title"))
	require.NoError(t, v.ToggleSort("price"))
	assert.Equal(t, "price", v.SortField)
	assert.False(t, v.Desc)

	err := v.ToggleSort("classification")
	assert.ErrorIs(t, err, ErrInvalidSortField)
	assert.Equal(t, "price", v.SortField)
}

func TestCatalogView_SetPageSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{5, false},
		{10, false},
		{20, false},
		{50, false},
		{0, true},
		{7, true},
		{100, true},
	}

	for _, tt := range tests {
		v := NewCatalogView()
		v.Page = 2
		err := v.SetPageSize(tt.size)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPageSize, "size=%d", tt.size)
			assert.Equal(t, 2, v.Page)
			assert.Equal(t, DefaultPageSize, v.PageSize)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.size, v.PageSize)
		assert.Equal(t, 1, v.Page)
	}
}

func TestCatalogView_SetCategoryResetsPage(t *testing.T) {
	v := NewCatalogView()
	v.Page = 4
	v.SetCategory("Fiction")
	assert.Equal(t, "Fiction", v.Params().Category)
	assert.Equal(t, 1, v.Page)
}

func TestCatalogView_PageCount(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{12, 10, 2},
		{50, 50, 1},
	}
	for _, tt := range tests {
		v := NewCatalogView()
		v.PageSize = tt.pageSize
		v.TotalBooks = tt.total
		assert.Equal(t, tt.want, v.PageCount(), "total=%d size=%d", tt.total, tt.pageSize)
	}
}

func TestCatalogView_Navigation(t *testing.T) {
	v := NewCatalogView()
	v.TotalBooks = 12 // 3页

	assert.ErrorIs(t, v.Prev(), ErrPageOutOfRange)
	assert.Equal(t, 1, v.Page)

	require.NoError(t, v.Next())
	require.NoError(t, v.Next())
	assert.Equal(t, 3, v.Page)
	assert.True(t, v.CanPrev())
	assert.False(t, v.CanNext())
	assert.ErrorIs(t, v.Next(), ErrPageOutOfRange)
	assert.Equal(t, 3, v.Page)

	require.NoError(t, v.Prev())
	assert.Equal(t, 2, v.Page)

	assert.ErrorIs(t, v.GoTo(0), ErrPageOutOfRange)
	assert.ErrorIs(t, v.GoTo(4), ErrPageOutOfRange)
	require.NoError(t, v.GoTo(3))
	assert.Equal(t, 3, v.Page)
}

func TestCatalogView_GoToOnEmptyCatalog(t *testing.T) {
	v := NewCatalogView()
	assert.NoError(t, v.GoTo(1))
	assert.ErrorIs(t, v.GoTo(2), ErrPageOutOfRange)
}

func TestCatalogView_Apply(t *testing.T) {
	v := NewCatalogView()
	v.Apply(&client.BookPage{TotalBooks: 1, Books: []client.Book{{BookID: 1, Title: "Dune"}}}, nil)
	assert.Len(t, v.Books, 1)
	assert.Nil(t, v.Err)

	// 失败时保留上一次的数据,只记录错误
	boom := errors.New("connection refused")
	v.Apply(nil, boom)
	assert.Equal(t, boom, v.Err)
	assert.Len(t, v.Books, 1)

	v.Apply(&client.BookPage{}, nil)
	assert.Nil(t, v.Err)
	assert.Empty(t, v.Books)
}
