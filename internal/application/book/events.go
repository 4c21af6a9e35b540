package book

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/minibookstore/internal/domain/book"
)

// EventType 目录事件类型,同时作为消息的routing key
type EventType string

const (
	EventBookCreated EventType = "book.created"
	EventBookUpdated EventType = "book.updated"
	EventBookDeleted EventType = "book.deleted"
)

// BookEvent 目录变更事件
// 删除事件只携带BookID
type BookEvent struct {
	Type       EventType        `json:"type"`
	BookID     uint             `json:"bookId"`
	Title      string           `json:"title,omitempty"`
	Category   string           `json:"category,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// EventPublisher 目录事件发布接口
// 由消息队列适配器实现;未启用消息队列时使用NopEventPublisher
type EventPublisher interface {
	PublishBookEvent(ctx context.Context, event BookEvent) error
}

// NopEventPublisher 丢弃所有事件
type NopEventPublisher struct{}

// PublishBookEvent 什么也不做
func (NopEventPublisher) PublishBookEvent(context.Context, BookEvent) error {
	return nil
}

func newBookEvent(t EventType, b *book.Book) BookEvent {
	price := b.Price
	return BookEvent{
		Type:       t,
		BookID:     b.ID,
		Title:      b.Title,
		Category:   b.Category,
		Price:      &price,
		OccurredAt: time.Now().UTC(),
	}
}

func newDeletedEvent(id uint) BookEvent {
	return BookEvent{
		Type:       EventBookDeleted,
		BookID:     id,
		OccurredAt: time.Now().UTC(),
	}
}
