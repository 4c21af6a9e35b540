// Package saga 按顺序执行一组步骤,某步失败时逆序补偿已完成的步骤
//
// 用法:
//
//	s := saga.NewSaga(30*time.Second, logger)
//	s.AddStep("同步服务端购物车", replaceRemote, restoreRemote)
//	s.AddStep("清空本地购物车", clearLocal, nil)
//	err := s.Execute(ctx)
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Step 一个步骤
// Action和Compensate都可以为nil;Compensate只依赖自己Action的结果
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次编排
type Saga struct {
	steps    []Step
	executed []Step
	timeout  time.Duration
	logger   *zap.Logger
}

// CompensationError 补偿过程中失败的步骤,需要人工处理
type CompensationError struct {
	Cause  error
	Failed map[string]error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%v (补偿失败%d步)", e.Cause, len(e.Failed))
}

func (e *CompensationError) Unwrap() error {
	return e.Cause
}

// NewSaga timeout为整体超时,0表示不限
func NewSaga(timeout time.Duration, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{timeout: timeout, logger: logger}
}

// AddStep 追加步骤,按添加顺序执行,按逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行全部步骤
// 任一步失败或超时时逆序执行已完成步骤的补偿,返回的错误包装失败原因;
// 补偿本身也失败时返回*CompensationError
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return s.rollback(ctx, fmt.Errorf("saga超时: %w", err))
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				return s.rollback(ctx, fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err))
			}
		}
		s.executed = append(s.executed, step)
	}
	return nil
}

// rollback 逆序补偿,单步补偿失败时继续补偿其余步骤
// 补偿使用脱离原超时的上下文
func (s *Saga) rollback(ctx context.Context, cause error) error {
	ctx = context.WithoutCancel(ctx)
	failed := make(map[string]error)

	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("补偿失败", zap.String("step", step.Name), zap.Error(err))
			failed[step.Name] = err
		}
	}
	s.executed = nil

	if len(failed) > 0 {
		return &CompensationError{Cause: cause, Failed: failed}
	}
	return cause
}

// IsCompensationFailed 是否存在补偿失败的步骤
func IsCompensationFailed(err error) bool {
	var ce *CompensationError
	return errors.As(err, &ce)
}
