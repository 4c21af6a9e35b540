package book

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/minibookstore/internal/domain/book"
)

// mockBookService 模拟领域服务
type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) CreateBook(ctx context.Context, b *book.Book) (*book.Book, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookService) GetBookByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*book.Book), args.Error(1)
}

func (m *mockBookService) UpdateBook(ctx context.Context, id uint, b *book.Book) error {
	return m.Called(ctx, id, b).Error(0)
}

func (m *mockBookService) DeleteBook(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookService) ListBooks(ctx context.Context, p book.ListParams) ([]*book.Book, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*book.Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookService) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	events []BookEvent
	err    error
}

func (p *recordingPublisher) PublishBookEvent(_ context.Context, e BookEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func duneInput() BookInput {
	return BookInput{
		Title:     "Dune",
		Author:    "Frank Herbert",
		Publisher: "Chilton",
		ISBN:      "9780441013593",
		Category:  "Fiction",
		PageCount: 412,
		Price:     decimal.RequireFromString("9.99"),
	}
}

func TestListBooksUseCase_PassesParams(t *testing.T) {
	svc := new(mockBookService)
	uc := NewListBooksUseCase(svc)

	want := book.ListParams{Category: "Fiction", Page: 2, PageSize: 5, SortBy: book.SortByPrice, Order: book.OrderDesc}
	svc.On("ListBooks", mock.Anything, want).Return([]*book.Book{{ID: 6}}, int64(12), nil)

	resp, err := uc.Execute(context.Background(), ListBooksRequest{
		Category: "Fiction", Page: 2, PageSize: 5, SortBy: "price", Order: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.TotalBooks)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, uint(6), resp.Books[0].ID)
}

func TestListBooksUseCase_InvalidPagination(t *testing.T) {
	svc := new(mockBookService)
	svc.On("ListBooks", mock.Anything, mock.Anything).Return(nil, int64(0), book.ErrInvalidPagination)

	_, err := NewListBooksUseCase(svc).Execute(context.Background(), ListBooksRequest{Page: 0, PageSize: 5})
	assert.ErrorIs(t, err, book.ErrInvalidPagination)
}

func TestCreateBookUseCase(t *testing.T) {
	t.Run("成功后发布book.created", func(t *testing.T) {
		svc := new(mockBookService)
		pub := &recordingPublisher{}
		uc := NewCreateBookUseCase(svc, pub, zap.NewNop())

		stored := duneInput().toEntity()
		stored.ID = 7
		svc.On("CreateBook", mock.Anything, mock.MatchedBy(func(b *book.Book) bool {
			return b.Title == "Dune" && b.PageCount == 412
		})).Return(stored, nil)

		created, err := uc.Execute(context.Background(), duneInput())
		require.NoError(t, err)
		assert.Equal(t, uint(7), created.ID)

		require.Len(t, pub.events, 1)
		assert.Equal(t, EventBookCreated, pub.events[0].Type)
		assert.Equal(t, uint(7), pub.events[0].BookID)
		assert.True(t, pub.events[0].Price.Equal(decimal.RequireFromString("9.99")))
	})

	t.Run("校验失败不发布", func(t *testing.T) {
		svc := new(mockBookService)
		pub := &recordingPublisher{}
		uc := NewCreateBookUseCase(svc, pub, zap.NewNop())

		svc.On("CreateBook", mock.Anything, mock.Anything).Return(nil, book.ErrMissingField("title"))

		_, err := uc.Execute(context.Background(), BookInput{})
		assert.Error(t, err)
		assert.Empty(t, pub.events)
	})

	t.Run("发布失败不影响结果", func(t *testing.T) {
		svc := new(mockBookService)
		pub := &recordingPublisher{err: errors.New("broker down")}
		core, logs := observer.New(zapcore.WarnLevel)
		uc := NewCreateBookUseCase(svc, pub, zap.New(core))

		svc.On("CreateBook", mock.Anything, mock.Anything).Return(&book.Book{ID: 1, Title: "Dune"}, nil)

		created, err := uc.Execute(context.Background(), duneInput())
		require.NoError(t, err)
		assert.Equal(t, uint(1), created.ID)
		require.Equal(t, 1, logs.FilterMessage("目录事件发布失败").Len())
	})
}

func TestUpdateBookUseCase(t *testing.T) {
	t.Run("成功", func(t *testing.T) {
		svc := new(mockBookService)
		pub := &recordingPublisher{}
		uc := NewUpdateBookUseCase(svc, pub, zap.NewNop())

		in := duneInput()
		in.ID = 3
		svc.On("UpdateBook", mock.Anything, uint(3), mock.MatchedBy(func(b *book.Book) bool {
			return b.ID == 3 && b.Title == "Dune"
		})).Return(nil)

		require.NoError(t, uc.Execute(context.Background(), 3, in))
		require.Len(t, pub.events, 1)
		assert.Equal(t, EventBookUpdated, pub.events[0].Type)
		assert.Equal(t, uint(3), pub.events[0].BookID)
	})

	t.Run("不存在", func(t *testing.T) {
		svc := new(mockBookService)
		pub := &recordingPublisher{}
		uc := NewUpdateBookUseCase(svc, pub, zap.NewNop())
		svc.On("UpdateBook", mock.Anything, uint(404), mock.Anything).Return(book.ErrBookNotFound)

		in := duneInput()
		in.ID = 404
		assert.ErrorIs(t, uc.Execute(context.Background(), 404, in), book.ErrBookNotFound)
		assert.Empty(t, pub.events)
	})
}

func TestDeleteBookUseCase(t *testing.T) {
	svc := new(mockBookService)
	pub := &recordingPublisher{}
	uc := NewDeleteBookUseCase(svc, pub, zap.NewNop())

	svc.On("DeleteBook", mock.Anything, uint(5)).Return(nil)
	svc.On("DeleteBook", mock.Anything, uint(6)).Return(book.ErrBookNotFound)

	require.NoError(t, uc.Execute(context.Background(), 5))
	assert.ErrorIs(t, uc.Execute(context.Background(), 6), book.ErrBookNotFound)

	require.Len(t, pub.events, 1)
	assert.Equal(t, BookEvent{Type: EventBookDeleted, BookID: 5, OccurredAt: pub.events[0].OccurredAt}, pub.events[0])
}

func TestGetAndCategories(t *testing.T) {
	svc := new(mockBookService)
	svc.On("GetBookByID", mock.Anything, uint(1)).Return(&book.Book{ID: 1, Title: "Dune"}, nil)
	svc.On("ListCategories", mock.Anything).Return([]string{"Fiction", "History"}, nil)

	b, err := NewGetBookUseCase(svc).Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)

	categories, err := NewListCategoriesUseCase(svc).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fiction", "History"}, categories)
}

func TestNopEventPublisher(t *testing.T) {
	var p EventPublisher = NopEventPublisher{}
	assert.NoError(t, p.PublishBookEvent(context.Background(), newDeletedEvent(1)))
}
