package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/db"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *db.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *db.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.DB.WithContext(ctx)
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	var models []*OrderModel
	err := r.getDB(ctx).
		Preload("Blotter").
		Preload("Security").
		Preload("OrderStatus").
		Preload("OrderType").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(models))
	for _, m := range models {
		orders = append(orders, toOrder(m))
	}
	return orders, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var model OrderModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toOrder(&model), nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	model := toOrderModel(order)
	model.Version = 1
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	order.ID = model.ID
	order.Version = model.Version
	return nil
}

// Update 以 compare-and-swap 方式更新：WHERE id AND version 命中才写入并递增版本，
// 零行命中说明提交的版本已过期。
func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	currentVersion := order.Version
	result := r.getDB(ctx).Model(&OrderModel{}).
		Where("id = ? AND version = ?", order.ID, currentVersion).
		Updates(map[string]any{
			"blotter_id":      order.BlotterID,
			"security_id":     order.SecurityID,
			"quantity":        order.Quantity,
			"order_timestamp": order.OrderTimestamp,
			"order_type_id":   order.OrderTypeID,
			"order_status_id": order.OrderStatusID,
			"version":         currentVersion + 1,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}

	order.Version = currentVersion + 1
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id, version int64) error {
	result := r.getDB(ctx).
		Where("id = ? AND version = ?", id, version).
		Delete(&OrderModel{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}
