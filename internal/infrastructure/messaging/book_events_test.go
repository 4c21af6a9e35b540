package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/minibookstore/internal/application/book"
	"github.com/xiebiao/minibookstore/pkg/metrics"
)

type fakePublisher struct {
	keys     []string
	messages []interface{}
	ctxErr   error
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	f.ctxErr = ctx.Err()
	f.keys = append(f.keys, routingKey)
	f.messages = append(f.messages, message)
	return f.err
}

func TestPublishBookEvent(t *testing.T) {
	fake := &fakePublisher{}
	p := NewBookEventPublisher(fake)

	event := appbook.BookEvent{Type: appbook.EventBookCreated, BookID: 3, Title: "Dune"}
	require.NoError(t, p.PublishBookEvent(context.Background(), event))

	assert.Equal(t, []string{"book.created"}, fake.keys)
	assert.Equal(t, event, fake.messages[0])
}

// TestPublishBookEvent_IgnoresRequestCancel 请求ctx已取消时仍然发布
func TestPublishBookEvent_IgnoresRequestCancel(t *testing.T) {
	fake := &fakePublisher{}
	p := NewBookEventPublisher(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.PublishBookEvent(ctx, appbook.BookEvent{Type: appbook.EventBookDeleted, BookID: 1}))
	assert.NoError(t, fake.ctxErr)
}

func TestPublishBookEvent_RecordsFailure(t *testing.T) {
	metrics.Init()
	counter := metrics.CatalogEventsPublished.WithLabelValues("book.updated", "failure")
	before := testutil.ToFloat64(counter)

	fake := &fakePublisher{err: errors.New("channel closed")}
	err := NewBookEventPublisher(fake).PublishBookEvent(context.Background(), appbook.BookEvent{Type: appbook.EventBookUpdated})

	assert.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
