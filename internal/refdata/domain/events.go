package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 事件类型常量，同时作为 Kafka 消息的 event_type 字段
const (
	OrderCreatedEventType   = "orderdesk.order.created"
	OrderUpdatedEventType   = "orderdesk.order.updated"
	OrderDeletedEventType   = "orderdesk.order.deleted"
	BlockCreatedEventType   = "orderdesk.block.created"
	TradeCreatedEventType   = "orderdesk.trade.created"
	OrderSubmittedEventType = "orderdesk.order.submitted"
)

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID       int64           `json:"order_id"`
	BlotterID     int64           `json:"blotter_id"`
	SecurityID    int64           `json:"security_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	OrderStatusID int64           `json:"order_status_id"`
	OccurredOn    time.Time       `json:"occurred_on"`
}

// OrderUpdatedEvent 订单更新事件
type OrderUpdatedEvent struct {
	OrderID     int64     `json:"order_id"`
	OldStatusID int64     `json:"old_status_id"`
	NewStatusID int64     `json:"new_status_id"`
	NewVersion  int64     `json:"new_version"`
	OccurredOn  time.Time `json:"occurred_on"`
}

// OrderDeletedEvent 订单删除事件
type OrderDeletedEvent struct {
	OrderID    int64     `json:"order_id"`
	OccurredOn time.Time `json:"occurred_on"`
}

// BlockCreatedEvent 执行单元创建事件
type BlockCreatedEvent struct {
	BlockID     int64     `json:"block_id"`
	SecurityID  int64     `json:"security_id"`
	OrderTypeID int64     `json:"order_type_id"`
	OccurredOn  time.Time `json:"occurred_on"`
}

// TradeCreatedEvent 交易创建事件
type TradeCreatedEvent struct {
	TradeID    int64           `json:"trade_id"`
	BlockID    int64           `json:"block_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	OccurredOn time.Time       `json:"occurred_on"`
}

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// PublishOrderCreated 发布订单创建事件
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error

	// PublishOrderUpdated 发布订单更新事件
	PublishOrderUpdated(ctx context.Context, event OrderUpdatedEvent) error

	// PublishOrderDeleted 发布订单删除事件
	PublishOrderDeleted(ctx context.Context, event OrderDeletedEvent) error

	// PublishBlockCreated 发布执行单元创建事件
	PublishBlockCreated(ctx context.Context, event BlockCreatedEvent) error

	// PublishTradeCreated 发布交易创建事件
	PublishTradeCreated(ctx context.Context, event TradeCreatedEvent) error
}
