package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}

func TestListBooks_SendsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/book", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Fiction", q.Get("category"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("pageSize"))
		assert.Equal(t, "price", q.Get("sortBy"))
		assert.Equal(t, "desc", q.Get("order"))

		_, _ = w.Write([]byte(`{"totalBooks":12,"books":[{"bookID":3,"title":"Dune","price":9.99}]}`))
	})

	page, err := c.ListBooks(context.Background(), ListParams{
		Category: "Fiction",
		Page:     2,
		PageSize: 10,
		SortBy:   "price",
		Desc:     true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 12, page.TotalBooks)
	require.Len(t, page.Books, 1)
	assert.Equal(t, uint(3), page.Books[0].BookID)
	assert.True(t, decimal.RequireFromString("9.99").Equal(page.Books[0].Price))
}

func TestListBooks_ZeroParamsOmitted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"totalBooks":0,"books":[]}`))
	})

	page, err := c.ListBooks(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Books)
}

func TestGetBook_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/book/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":40402,"message":"图书不存在"}`))
	})

	_, err := c.GetBook(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 40402, apiErr.Code)
	assert.Equal(t, "图书不存在", apiErr.Message)
}

func TestErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.DeleteBook(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "HTTP 502", err.Error())
	assert.False(t, IsNotFound(err))
}

func TestCreateAndUpdateBook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var b Book
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/api/book", r.URL.Path)
			b.BookID = 7
			w.Header().Set("Location", "/api/book/7")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(b)
		case http.MethodPut:
			assert.Equal(t, "/api/book/7", r.URL.Path)
			assert.Equal(t, uint(7), b.BookID)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	created, err := c.CreateBook(context.Background(), Book{Title: "Dune", Price: decimal.RequireFromString("9.99")})
	require.NoError(t, err)
	assert.Equal(t, uint(7), created.BookID)
	assert.Equal(t, "Dune", created.Title)

	created.Title = "Dune Messiah"
	assert.NoError(t, c.UpdateBook(context.Background(), *created))
}

func TestSessionToken_CapturedAndResent(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			assert.Empty(t, r.Header.Get(SessionHeader))
			w.Header().Set(SessionHeader, "token-1")
		} else {
			assert.Equal(t, "token-1", r.Header.Get(SessionHeader))
			w.Header().Set(SessionHeader, "token-2")
		}
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.Cart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", c.Session())

	_, err = c.Cart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", c.Session())
}

func TestWithSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "saved", r.Header.Get(SessionHeader))
		_, _ = w.Write([]byte(`{"lines":[],"totalQuantity":0,"totalPrice":0}`))
	}, WithSession("saved"))

	s, err := c.CartSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.TotalQuantity)
	assert.True(t, s.TotalPrice.IsZero())
}

func TestCartOperations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cart/add", "/api/cart/remove":
			assert.Equal(t, http.MethodPost, r.Method)
			var line CartLine
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&line))
			assert.Equal(t, uint(5), line.BookID)
			_, _ = w.Write([]byte(`[{"bookId":5,"title":"Emma","price":3.5,"quantity":1}]`))
		case "/api/cart":
			assert.Equal(t, http.MethodPut, r.Method)
			var lines []CartLine
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&lines))
			assert.NotNil(t, lines)
			_ = json.NewEncoder(w).Encode(lines)
		case "/api/cart/clear":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	lines, err := c.AddToCart(ctx, CartLine{BookID: 5, Title: "Emma", Price: decimal.RequireFromString("3.5")})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	_, err = c.RemoveFromCart(ctx, 5)
	require.NoError(t, err)

	lines, err = c.ReplaceCart(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.NoError(t, c.ClearCart(ctx))
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListCategories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
