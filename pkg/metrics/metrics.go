// Package metrics 基于Prometheus的指标定义
//
// 指标分三类：
//   - HTTP：请求总数、耗时分布、处理中请求数（由gin中间件记录）
//   - 业务：目录缓存命中率、购物车操作数、目录事件发布数
//   - 熔断器：状态和请求结果
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 标签只使用有限取值（method、route、status），不要把图书ID或会话ID放进标签。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

var (
	once sync.Once

	// HTTPRequestsTotal HTTP请求总数，标签：method、route、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时，标签：method、route
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// CatalogCacheRequests 目录缓存访问，标签：kind（detail/list/categories）、result（hit/miss/error/bypass）
	CatalogCacheRequests *prometheus.CounterVec

	// CartOperationsTotal 购物车操作，标签：op（add/remove/replace/clear）、result（success/failure）
	CartOperationsTotal *prometheus.CounterVec

	// CatalogEventsPublished 目录事件发布，标签：routing_key、result（success/failure）
	CatalogEventsPublished *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN），标签：name
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求结果，标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec
)

// Init 注册所有指标到默认Registry，重复调用无副作用
func Init() {
	once.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP请求总数",
			},
			[]string{"method", "route", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP请求耗时（秒）",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "route"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_progress",
				Help:      "正在处理的HTTP请求数",
			},
		)

		CatalogCacheRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_cache_requests_total",
				Help:      "目录缓存访问次数",
			},
			[]string{"kind", "result"},
		)

		CartOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_operations_total",
				Help:      "购物车操作次数",
			},
			[]string{"op", "result"},
		)

		CatalogEventsPublished = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_events_published_total",
				Help:      "目录事件发布次数",
			},
			[]string{"routing_key", "result"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_requests_total",
				Help:      "熔断器请求总数",
			},
			[]string{"name", "result"},
		)
	})
}

// Result 把error转换为success/failure标签值
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveCache 记录一次目录缓存访问
func ObserveCache(kind, result string) {
	Init()
	CatalogCacheRequests.WithLabelValues(kind, result).Inc()
}

// ObserveCartOperation 记录一次购物车操作
func ObserveCartOperation(op string, err error) {
	Init()
	CartOperationsTotal.WithLabelValues(op, Result(err)).Inc()
}

// ObserveEventPublished 记录一次目录事件发布
func ObserveEventPublished(routingKey string, err error) {
	Init()
	CatalogEventsPublished.WithLabelValues(routingKey, Result(err)).Inc()
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state int) {
	Init()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// ObserveBreakerRequest 记录熔断器请求结果
func ObserveBreakerRequest(name, result string) {
	Init()
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}
