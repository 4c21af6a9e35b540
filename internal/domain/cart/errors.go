package cart

import (
	apperrors "github.com/xiebiao/minibookstore/pkg/errors"
)

// 购物车领域错误定义
var (
	ErrInvalidBookID   = apperrors.WithDetail(apperrors.ErrInvalidParams, "bookId必须大于0")
	ErrInvalidQuantity = apperrors.WithDetail(apperrors.ErrInvalidParams, "quantity不合法")
	ErrDuplicateLine   = apperrors.WithDetail(apperrors.ErrInvalidParams, "同一本书只能出现一次")
	ErrInvalidSession  = apperrors.WithDetail(apperrors.ErrInvalidParams, "购物车会话不能为空")

	// ErrConcurrentUpdate 乐观锁重试次数用尽
	ErrConcurrentUpdate = apperrors.New(apperrors.ErrCodeRedisError, "购物车并发更新冲突,请重试")
)
