package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newRecorder 安装内存Span记录器
func newRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr
}

func TestInitTracer(t *testing.T) {
	// exporter延迟连接，没有collector也能初始化
	shutdown, err := InitTracer(context.Background(), "test-service", "localhost:4317")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_ = shutdown(context.Background())
}

func TestStartSpan_ChildSharesTrace(t *testing.T) {
	sr := newRecorder(t)

	ctx, root := StartSpan(context.Background(), "book", "ListBooks")
	_, child := StartSpan(ctx, "book", "Repository.List")
	child.End()
	root.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "Repository.List", spans[0].Name())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestEndSpan(t *testing.T) {
	sr := newRecorder(t)

	_, ok := StartSpan(context.Background(), "cart", "Add")
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "cart", "Remove")
	EndSpan(failed, errors.New("redis down"))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "redis down", spans[1].Status().Description)
	require.Len(t, spans[1].Events(), 1)
	assert.Equal(t, "exception", spans[1].Events()[0].Name)
}

func TestExtractIDs(t *testing.T) {
	newRecorder(t)

	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))

	ctx, span := StartSpan(context.Background(), "book", "GetBook")
	defer span.End()

	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
}
