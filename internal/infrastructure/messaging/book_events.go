// Package messaging 目录事件的消息队列适配器
package messaging

import (
	"context"
	"time"

	appbook "github.com/xiebiao/minibookstore/internal/application/book"
	"github.com/xiebiao/minibookstore/pkg/metrics"
)

// publisher mq.Publisher的发布能力
type publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

const defaultPublishTimeout = 3 * time.Second

// BookEventPublisher 把目录事件发布到RabbitMQ,routing key即事件类型
type BookEventPublisher struct {
	publisher publisher
	timeout   time.Duration
}

// NewBookEventPublisher 创建目录事件发布器
func NewBookEventPublisher(p publisher) *BookEventPublisher {
	return &BookEventPublisher{
		publisher: p,
		timeout:   defaultPublishTimeout,
	}
}

// PublishBookEvent 发布事件
// 请求结束(ctx取消)后事件仍要发出,所以只继承ctx的值,超时单独控制
func (p *BookEventPublisher) PublishBookEvent(ctx context.Context, event appbook.BookEvent) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	routingKey := string(event.Type)
	err := p.publisher.Publish(ctx, routingKey, event)
	metrics.ObserveEventPublished(routingKey, err)
	return err
}
