package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/metrics"
)

// CreateOrderCommand 创建订单命令
type CreateOrderCommand struct {
	BlotterID      int64
	SecurityID     int64
	Quantity       decimal.Decimal
	OrderTimestamp time.Time
	OrderTypeID    int64
	OrderStatusID  int64
}

// UpdateOrderCommand 更新订单命令，Version 为调用方最后观察到的版本号
type UpdateOrderCommand struct {
	ID             int64
	BlotterID      int64
	SecurityID     int64
	Quantity       decimal.Decimal
	OrderTimestamp time.Time
	OrderTypeID    int64
	OrderStatusID  int64
	Version        int64
}

// OrderService 处理订单的读写操作
type OrderService struct {
	orderRepo domain.OrderRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewOrderService 创建订单应用服务
func NewOrderService(
	orderRepo domain.OrderRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("module", "order_service"),
	}
}

// ListOrders 列出订单及其关联实体
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx)
}

// GetOrder 查询单个订单
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orderRepo.Get(ctx, id)
}

// CreateOrder 创建订单
func (s *OrderService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	order := domain.NewOrder(cmd.BlotterID, cmd.SecurityID, cmd.Quantity, cmd.OrderTimestamp, cmd.OrderTypeID, cmd.OrderStatusID)
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.OrdersTotal.Inc()
	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"blotter_id", order.BlotterID,
		"security_id", order.SecurityID,
		"quantity", order.Quantity,
	)

	if err := s.publisher.PublishOrderCreated(ctx, domain.OrderCreatedEvent{
		OrderID:       order.ID,
		BlotterID:     order.BlotterID,
		SecurityID:    order.SecurityID,
		Quantity:      order.Quantity,
		OrderStatusID: order.OrderStatusID,
		OccurredOn:    time.Now(),
	}); err != nil {
		// 事件发布失败不阻塞主流程
		s.logger.ErrorContext(ctx, "failed to publish order created event", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// UpdateOrder 更新订单，版本号过期时返回 ErrVersionConflict
func (s *OrderService) UpdateOrder(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error) {
	existing, err := s.orderRepo.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	oldStatusID := existing.OrderStatusID

	order := &domain.Order{
		ID:             cmd.ID,
		BlotterID:      cmd.BlotterID,
		SecurityID:     cmd.SecurityID,
		Quantity:       cmd.Quantity,
		OrderTimestamp: cmd.OrderTimestamp,
		OrderTypeID:    cmd.OrderTypeID,
		OrderStatusID:  cmd.OrderStatusID,
		Version:        cmd.Version,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		if err == domain.ErrVersionConflict {
			s.metrics.VersionConflictsTotal.Inc()
			s.logger.WarnContext(ctx, "order update rejected: stale version",
				"order_id", cmd.ID,
				"submitted_version", cmd.Version,
			)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "order updated",
		"order_id", order.ID,
		"old_status_id", oldStatusID,
		"new_status_id", order.OrderStatusID,
		"version", order.Version,
	)

	if err := s.publisher.PublishOrderUpdated(ctx, domain.OrderUpdatedEvent{
		OrderID:     order.ID,
		OldStatusID: oldStatusID,
		NewStatusID: order.OrderStatusID,
		NewVersion:  order.Version,
		OccurredOn:  time.Now(),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order updated event", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// DeleteOrder 删除订单，版本号过期时返回 ErrVersionConflict
func (s *OrderService) DeleteOrder(ctx context.Context, id, version int64) error {
	if err := s.orderRepo.Delete(ctx, id, version); err != nil {
		if err == domain.ErrVersionConflict {
			s.metrics.VersionConflictsTotal.Inc()
		}
		return err
	}

	s.logger.InfoContext(ctx, "order deleted", "order_id", id)

	if err := s.publisher.PublishOrderDeleted(ctx, domain.OrderDeletedEvent{
		OrderID:    id,
		OccurredOn: time.Now(),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order deleted event", "order_id", id, "error", err)
	}

	return nil
}
