package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// 错误码按段划分,前三位对应HTTP状态码:
//   - 409xx 请求参数不合法(统一映射为400)
//   - 404xx 资源不存在
//   - 500xx 服务端依赖故障
const (
	ErrCodeInvalidParams = 40900
	ErrCodeBindError     = 40901
	ErrCodeIDMismatch    = 40902 // 路径ID与请求体ID不一致

	ErrCodeNotFound     = 40400
	ErrCodeBookNotFound = 40402

	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002
)

var (
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// AppError 对外暴露Code和Message,底层错误Err只进日志
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is 只比较错误码,WithDetail派生出的错误仍能匹配预定义错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus 错误码映射为HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch e.Code / 100 {
	case 400, 409:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 把底层错误包装成内部错误,细节不返回给客户端
func Wrap(err error, message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Err: err}
}

// WithDetail 沿用base的错误码,在提示后追加具体原因
func WithDetail(base *AppError, detail string) *AppError {
	return &AppError{Code: base.Code, Message: base.Message + ": " + detail}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 取出错误链中的AppError,取不到时视为内部错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
