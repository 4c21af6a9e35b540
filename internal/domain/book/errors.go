package book

import (
	apperrors "github.com/xiebiao/minibookstore/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidPagination 分页参数非法
	ErrInvalidPagination = apperrors.New(apperrors.ErrCodeInvalidParams, "页码和每页数量必须大于等于1")

	// ErrInvalidSort 排序参数非法
	ErrInvalidSort = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的排序字段或方向")

	// ErrIDMismatch 路径ID与请求体ID不一致
	ErrIDMismatch = apperrors.New(apperrors.ErrCodeIDMismatch, "路径中的图书ID与请求体不一致")
)

// ErrMissingField 必填字段为空
func ErrMissingField(field string) error {
	return apperrors.WithDetail(apperrors.ErrInvalidParams, field+"不能为空")
}
