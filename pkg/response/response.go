package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/minibookstore/pkg/errors"
)

// ErrorBody 统一错误响应结构
// 设计说明：
// 1. 成功响应直接返回业务数据（保持REST接口形态，前端无需拆包）
// 2. 失败时HTTP状态码表达错误类别（400/404/500），Code是细分的业务错误码
// 3. Message是用户友好的提示信息，内部错误细节只进日志
type ErrorBody struct {
	Code    int    `json:"code" example:"40402"`
	Message string `json:"message" example:"图书不存在"`
}

// JSON 成功响应（指定状态码）
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// OK 200成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201创建成功响应，同时写入Location头
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

// NoContent 204无内容响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 记录详细错误到日志（包含内部错误）
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)

	// 返回用户友好的错误信息
	c.AbortWithStatusJSON(status, ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

// BindError 参数绑定失败响应
func BindError(c *gin.Context, err error) {
	Error(c, apperrors.WithDetail(apperrors.ErrBindError, err.Error()))
}
