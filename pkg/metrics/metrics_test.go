package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Idempotent(t *testing.T) {
	Init()
	first := HTTPRequestsTotal
	Init()

	require.NotNil(t, HTTPRequestsTotal)
	assert.Same(t, first, HTTPRequestsTotal, "重复Init不应重新注册")
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, CatalogCacheRequests)
}

func TestObserveCache(t *testing.T) {
	before := testutil.ToFloat64(cacheCounter(t, "detail", "hit"))
	ObserveCache("detail", "hit")
	ObserveCache("detail", "hit")
	ObserveCache("detail", "miss")

	assert.Equal(t, before+2, testutil.ToFloat64(cacheCounter(t, "detail", "hit")))
}

func TestObserveCartOperation(t *testing.T) {
	Init()
	ok := CartOperationsTotal.WithLabelValues("add", "success")
	failed := CartOperationsTotal.WithLabelValues("add", "failure")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveCartOperation("add", nil)
	ObserveCartOperation("add", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestBreakerMetrics(t *testing.T) {
	SetBreakerState("catalog-cache", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("catalog-cache")))

	before := testutil.ToFloat64(CircuitBreakerRequests.WithLabelValues("catalog-cache", "rejected"))
	ObserveBreakerRequest("catalog-cache", "rejected")
	assert.Equal(t, before+1, testutil.ToFloat64(CircuitBreakerRequests.WithLabelValues("catalog-cache", "rejected")))
}

func TestResult(t *testing.T) {
	assert.Equal(t, "success", Result(nil))
	assert.Equal(t, "failure", Result(errors.New("x")))
}

func cacheCounter(t *testing.T, kind, result string) prometheus.Counter {
	t.Helper()
	Init()
	return CatalogCacheRequests.WithLabelValues(kind, result)
}
