package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/db"
	"gorm.io/gorm"
)

type executionRepository struct {
	db *db.DB
}

// NewExecutionRepository 创建执行单元仓储
func NewExecutionRepository(db *db.DB) domain.ExecutionRepository {
	return &executionRepository{db: db}
}

func (r *executionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.DB.WithContext(ctx)
}

func (r *executionRepository) CreateBlock(ctx context.Context, block *domain.Block) error {
	model := &BlockModel{
		SecurityID:  block.SecurityID,
		OrderTypeID: block.OrderTypeID,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	block.ID = model.ID
	return nil
}

func (r *executionRepository) CreateAllocation(ctx context.Context, alloc *domain.BlockAllocation) error {
	model := &BlockAllocationModel{
		OrderID:        alloc.OrderID,
		BlockID:        alloc.BlockID,
		Quantity:       alloc.Quantity,
		FilledQuantity: alloc.FilledQuantity,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	alloc.ID = model.ID
	return nil
}

func (r *executionRepository) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	model := &TradeModel{
		BlockID:        trade.BlockID,
		DestinationID:  trade.DestinationID,
		TradeTypeID:    trade.TradeTypeID,
		Quantity:       trade.Quantity,
		FilledQuantity: trade.FilledQuantity,
		Version:        trade.Version,
	}
	if model.Version == 0 {
		model.Version = 1
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	trade.ID = model.ID
	trade.Version = model.Version
	return nil
}

func (r *executionRepository) GetBlock(ctx context.Context, id int64) (*domain.Block, error) {
	var model BlockModel
	if err := r.getDB(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Block{
		ID:          model.ID,
		SecurityID:  model.SecurityID,
		OrderTypeID: model.OrderTypeID,
	}, nil
}

func (r *executionRepository) ListAllocationsByBlock(ctx context.Context, blockID int64) ([]*domain.BlockAllocation, error) {
	var models []*BlockAllocationModel
	if err := r.getDB(ctx).Where("block_id = ?", blockID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	allocs := make([]*domain.BlockAllocation, 0, len(models))
	for _, m := range models {
		allocs = append(allocs, &domain.BlockAllocation{
			ID:             m.ID,
			OrderID:        m.OrderID,
			BlockID:        m.BlockID,
			Quantity:       m.Quantity,
			FilledQuantity: m.FilledQuantity,
		})
	}
	return allocs, nil
}
