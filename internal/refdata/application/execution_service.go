package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/metrics"
)

// CreateBlockCommand 创建执行单元命令
type CreateBlockCommand struct {
	SecurityID  int64
	OrderTypeID int64
}

// CreateAllocationCommand 创建份额命令
type CreateAllocationCommand struct {
	OrderID        int64
	BlockID        int64
	Quantity       decimal.Decimal
	FilledQuantity decimal.Decimal
}

// CreateTradeCommand 创建交易命令
type CreateTradeCommand struct {
	BlockID        int64
	DestinationID  *int64
	TradeTypeID    *int64
	Quantity       decimal.Decimal
	FilledQuantity decimal.Decimal
	Version        int64
}

// ExecutionService 处理执行单元、份额与交易的创建。
// 三类记录在提交工作流中各创建一次，之后不再修改。
type ExecutionService struct {
	executionRepo domain.ExecutionRepository
	orderRepo     domain.OrderRepository
	publisher     domain.EventPublisher
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewExecutionService 创建执行应用服务
func NewExecutionService(
	executionRepo domain.ExecutionRepository,
	orderRepo domain.OrderRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ExecutionService {
	return &ExecutionService{
		executionRepo: executionRepo,
		orderRepo:     orderRepo,
		publisher:     publisher,
		metrics:       m,
		logger:        logger.With("module", "execution_service"),
	}
}

// CreateBlock 创建执行单元
func (s *ExecutionService) CreateBlock(ctx context.Context, cmd CreateBlockCommand) (*domain.Block, error) {
	block := &domain.Block{
		SecurityID:  cmd.SecurityID,
		OrderTypeID: cmd.OrderTypeID,
	}
	if err := block.Validate(); err != nil {
		return nil, err
	}

	if err := s.executionRepo.CreateBlock(ctx, block); err != nil {
		return nil, err
	}

	s.metrics.BlocksTotal.Inc()
	s.logger.InfoContext(ctx, "block created",
		"block_id", block.ID,
		"security_id", block.SecurityID,
		"order_type_id", block.OrderTypeID,
	)

	if err := s.publisher.PublishBlockCreated(ctx, domain.BlockCreatedEvent{
		BlockID:     block.ID,
		SecurityID:  block.SecurityID,
		OrderTypeID: block.OrderTypeID,
		OccurredOn:  time.Now(),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish block created event", "block_id", block.ID, "error", err)
	}

	return block, nil
}

// CreateAllocation 创建份额，数量必须等于被引用订单的数量
func (s *ExecutionService) CreateAllocation(ctx context.Context, cmd CreateAllocationCommand) (*domain.BlockAllocation, error) {
	order, err := s.orderRepo.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve order %d: %w", cmd.OrderID, err)
	}
	if _, err := s.executionRepo.GetBlock(ctx, cmd.BlockID); err != nil {
		return nil, fmt.Errorf("failed to resolve block %d: %w", cmd.BlockID, err)
	}

	alloc := &domain.BlockAllocation{
		OrderID:        cmd.OrderID,
		BlockID:        cmd.BlockID,
		Quantity:       cmd.Quantity,
		FilledQuantity: cmd.FilledQuantity,
	}
	if err := alloc.Validate(order.Quantity); err != nil {
		return nil, err
	}

	if err := s.executionRepo.CreateAllocation(ctx, alloc); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "allocation created",
		"allocation_id", alloc.ID,
		"order_id", alloc.OrderID,
		"block_id", alloc.BlockID,
		"quantity", alloc.Quantity,
	)
	return alloc, nil
}

// CreateTrade 创建交易，数量必须等于执行单元的份额总量
func (s *ExecutionService) CreateTrade(ctx context.Context, cmd CreateTradeCommand) (*domain.Trade, error) {
	if _, err := s.executionRepo.GetBlock(ctx, cmd.BlockID); err != nil {
		return nil, fmt.Errorf("failed to resolve block %d: %w", cmd.BlockID, err)
	}

	allocs, err := s.executionRepo.ListAllocationsByBlock(ctx, cmd.BlockID)
	if err != nil {
		return nil, err
	}
	blockQuantity := decimal.Zero
	for _, a := range allocs {
		blockQuantity = blockQuantity.Add(a.Quantity)
	}

	trade := &domain.Trade{
		BlockID:        cmd.BlockID,
		DestinationID:  cmd.DestinationID,
		TradeTypeID:    cmd.TradeTypeID,
		Quantity:       cmd.Quantity,
		FilledQuantity: cmd.FilledQuantity,
		Version:        cmd.Version,
	}
	if err := trade.Validate(blockQuantity); err != nil {
		return nil, err
	}

	if err := s.executionRepo.CreateTrade(ctx, trade); err != nil {
		return nil, err
	}

	s.metrics.TradesTotal.Inc()
	s.logger.InfoContext(ctx, "trade created",
		"trade_id", trade.ID,
		"block_id", trade.BlockID,
		"quantity", trade.Quantity,
	)

	if err := s.publisher.PublishTradeCreated(ctx, domain.TradeCreatedEvent{
		TradeID:    trade.ID,
		BlockID:    trade.BlockID,
		Quantity:   trade.Quantity,
		OccurredOn: time.Now(),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish trade created event", "trade_id", trade.ID, "error", err)
	}

	return trade, nil
}
