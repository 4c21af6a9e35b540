package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/minibookstore/pkg/errors"
	"github.com/xiebiao/minibookstore/pkg/response"
	"github.com/xiebiao/minibookstore/pkg/tracing"
)

// RequestIDHeader 请求ID头
const RequestIDHeader = "X-Request-ID"

const (
	requestIDKey  = "request_id"
	slowThreshold = 3 * time.Second
)

// Logger 请求日志中间件
// 1. 沿用上游传入的X-Request-ID,没有时生成UUID
// 2. 请求结束后按状态码分级输出:5xx→error,4xx→warn,其余info
// 3. 超过3秒的请求额外输出慢请求告警
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 请求ID
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// 2. 处理请求
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 3. 输出日志
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}

		if latency > slowThreshold {
			logger.Warn("slow request", fields...)
		}
	}
}

// RequestID 获取当前请求ID
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Recovery panic恢复,记录堆栈并返回500
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.String("request_id", RequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		response.Error(c, apperrors.ErrInternal)
	})
}
