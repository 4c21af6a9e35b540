package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// SessionHeader 购物车会话Token的请求/响应头
const SessionHeader = "X-Cart-Session"

const defaultTimeout = 10 * time.Second

// Book 图书
type Book struct {
	BookID    uint            `json:"bookID"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Publisher string          `json:"publisher"`
	ISBN      string          `json:"isbn"`
	Category  string          `json:"category"`
	PageCount int             `json:"pageCount"`
	Price     decimal.Decimal `json:"price"`
}

// BookPage 一页图书
type BookPage struct {
	TotalBooks int64  `json:"totalBooks"`
	Books      []Book `json:"books"`
}

// CartLine 购物车行
type CartLine struct {
	BookID   uint            `json:"bookId"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Lines         []CartLine      `json:"lines"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// ListParams 列表查询参数,零值字段不发送(由服务端使用默认值)
type ListParams struct {
	Category string
	Page     int
	PageSize int
	SortBy   string
	Desc     bool
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.Desc {
		q.Set("order", "desc")
	}
	return q
}

// APIError 服务端返回的错误({code, message})
type APIError struct {
	Status  int
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// IsNotFound 是否为404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 替换底层http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithSession 使用已有的购物车会话Token
func WithSession(token string) Option {
	return func(c *Client) {
		c.session = token
	}
}

// Client 书店HTTP API客户端
// 每次响应带回的X-Cart-Session都会被保存,下一次请求自动带上
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client

	mu      sync.RWMutex
	session string
}

// New 创建客户端
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session 当前购物车会话Token
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// ListBooks GET /api/book
func (c *Client) ListBooks(ctx context.Context, p ListParams) (*BookPage, error) {
	var page BookPage
	if err := c.do(ctx, http.MethodGet, "/api/book", p.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListCategories GET /api/book/categories
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/api/book/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBook GET /api/book/{id}
func (c *Client) GetBook(ctx context.Context, id uint) (*Book, error) {
	var b Book
	if err := c.do(ctx, http.MethodGet, bookPath(id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook POST /api/book,返回服务端生成ID后的图书
func (c *Client) CreateBook(ctx context.Context, b Book) (*Book, error) {
	var created Book
	if err := c.do(ctx, http.MethodPost, "/api/book", nil, b, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBook PUT /api/book/{id}
func (c *Client) UpdateBook(ctx context.Context, b Book) error {
	return c.do(ctx, http.MethodPut, bookPath(b.BookID), nil, b, nil)
}

// DeleteBook DELETE /api/book/{id}
func (c *Client) DeleteBook(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, bookPath(id), nil, nil, nil)
}

// Cart GET /api/cart
func (c *Client) Cart(ctx context.Context) ([]CartLine, error) {
	return c.cartLines(ctx, http.MethodGet, "/api/cart", nil)
}

// CartSummary GET /api/cart/summary
func (c *Client) CartSummary(ctx context.Context) (*CartSummary, error) {
	var s CartSummary
	if err := c.do(ctx, http.MethodGet, "/api/cart/summary", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AddToCart POST /api/cart/add
func (c *Client) AddToCart(ctx context.Context, line CartLine) ([]CartLine, error) {
	return c.cartLines(ctx, http.MethodPost, "/api/cart/add", line)
}

// RemoveFromCart POST /api/cart/remove
func (c *Client) RemoveFromCart(ctx context.Context, bookID uint) ([]CartLine, error) {
	return c.cartLines(ctx, http.MethodPost, "/api/cart/remove", CartLine{BookID: bookID})
}

// ReplaceCart PUT /api/cart
func (c *Client) ReplaceCart(ctx context.Context, lines []CartLine) ([]CartLine, error) {
	if lines == nil {
		lines = []CartLine{}
	}
	return c.cartLines(ctx, http.MethodPut, "/api/cart", lines)
}

// ClearCart POST /api/cart/clear
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/cart/clear", nil, nil, nil)
}

func (c *Client) cartLines(ctx context.Context, method, path string, body interface{}) ([]CartLine, error) {
	var lines []CartLine
	if err := c.do(ctx, method, path, nil, body, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func bookPath(id uint) string {
	return "/api/book/" + strconv.FormatUint(uint64(id), 10)
}

// do 发送请求并解码响应
// 2xx时把响应体解码到out(out为nil时丢弃);其他状态码解码为*APIError
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Session(); token != "" {
		req.Header.Set(SessionHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if token := resp.Header.Get(SessionHeader); token != "" {
		c.mu.Lock()
		c.session = token
		c.mu.Unlock()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
