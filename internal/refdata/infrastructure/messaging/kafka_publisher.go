// Package messaging 基于 Kafka 的领域事件发布实现
package messaging

import (
	"context"
	"strconv"

	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/mq"
)

// envelope Kafka 消息信封，统一携带事件类型
type envelope struct {
	EventType string `json:"event_type"`
	Payload   any    `json:"payload"`
}

type kafkaPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaPublisher 创建 Kafka 事件发布者
func NewKafkaPublisher(producer *mq.KafkaProducer, topic string) domain.EventPublisher {
	return &kafkaPublisher{producer: producer, topic: topic}
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, key int64, payload any) error {
	return p.producer.SendMessage(ctx, p.topic, strconv.FormatInt(key, 10), envelope{
		EventType: eventType,
		Payload:   payload,
	})
}

func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	return p.publish(ctx, domain.OrderCreatedEventType, event.OrderID, event)
}

func (p *kafkaPublisher) PublishOrderUpdated(ctx context.Context, event domain.OrderUpdatedEvent) error {
	return p.publish(ctx, domain.OrderUpdatedEventType, event.OrderID, event)
}

func (p *kafkaPublisher) PublishOrderDeleted(ctx context.Context, event domain.OrderDeletedEvent) error {
	return p.publish(ctx, domain.OrderDeletedEventType, event.OrderID, event)
}

func (p *kafkaPublisher) PublishBlockCreated(ctx context.Context, event domain.BlockCreatedEvent) error {
	return p.publish(ctx, domain.BlockCreatedEventType, event.BlockID, event)
}

func (p *kafkaPublisher) PublishTradeCreated(ctx context.Context, event domain.TradeCreatedEvent) error {
	return p.publish(ctx, domain.TradeCreatedEventType, event.TradeID, event)
}

// noopPublisher Kafka 未启用时的空实现
type noopPublisher struct{}

// NewNoopPublisher 创建空事件发布者
func NewNoopPublisher() domain.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOrderCreated(context.Context, domain.OrderCreatedEvent) error { return nil }
func (noopPublisher) PublishOrderUpdated(context.Context, domain.OrderUpdatedEvent) error { return nil }
func (noopPublisher) PublishOrderDeleted(context.Context, domain.OrderDeletedEvent) error { return nil }
func (noopPublisher) PublishBlockCreated(context.Context, domain.BlockCreatedEvent) error { return nil }
func (noopPublisher) PublishTradeCreated(context.Context, domain.TradeCreatedEvent) error { return nil }
