package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	refdomain "github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/internal/submission/domain"
)

// CreateBlockRequest 创建执行单元请求
type CreateBlockRequest struct {
	SecurityID  int64 `json:"securityId"`
	OrderTypeID int64 `json:"orderTypeId"`
}

// CreateAllocationRequest 创建份额请求
type CreateAllocationRequest struct {
	OrderID        int64           `json:"orderId"`
	BlockID        int64           `json:"blockId"`
	Quantity       decimal.Decimal `json:"quantity"`
	FilledQuantity decimal.Decimal `json:"filledQuantity"`
}

// CreateTradeRequest 创建交易请求
type CreateTradeRequest struct {
	BlockID        int64           `json:"blockId"`
	DestinationID  *int64          `json:"destinationId"`
	TradeTypeID    *int64          `json:"tradeTypeId"`
	Quantity       decimal.Decimal `json:"quantity"`
	FilledQuantity decimal.Decimal `json:"filledQuantity"`
	Version        int64           `json:"version"`
}

// UpdateOrderRequest 更新订单请求，除状态外的字段原样回传，
// Version 为最后观察到的版本号
type UpdateOrderRequest struct {
	BlotterID      int64           `json:"blotterId"`
	SecurityID     int64           `json:"securityId"`
	Quantity       decimal.Decimal `json:"quantity"`
	OrderTimestamp time.Time       `json:"orderTimestamp"`
	OrderTypeID    int64           `json:"orderTypeId"`
	OrderStatusID  int64           `json:"orderStatusId"`
	Version        int64           `json:"version"`
}

// ResourceClient 协调器依赖的四个远程写操作。
// 创建操作返回服务端分配的标识；错误对协调器不透明，仅按步骤归类。
type ResourceClient interface {
	CreateBlock(ctx context.Context, req CreateBlockRequest) (int64, error)
	CreateAllocation(ctx context.Context, req CreateAllocationRequest) (int64, error)
	CreateTrade(ctx context.Context, req CreateTradeRequest) (int64, error)
	UpdateOrder(ctx context.Context, orderID int64, req UpdateOrderRequest) error
}

// Coordinator 驱动订单批量提交：每个订单按固定顺序执行四次远程写，
// 订单之间严格串行，前一个订单到达终态后才开始下一个。
// 任一步骤失败即停止整个批次；失败订单已写入的 Block/Allocation/Trade
// 不做补偿删除，订单本身保持 New 状态。
type Coordinator struct {
	client ResourceClient
	logger *slog.Logger
}

// NewCoordinator 创建提交协调器
func NewCoordinator(client ResourceClient, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		client: client,
		logger: logger.With("module", "submission_coordinator"),
	}
}

// Submit 将选中的 New 订单批量转换为可交易的执行单元。
// orderIDs 决定处理顺序，orders 为本地缓存的订单记录，
// openStatusID 为解析好的 Open 状态 ID。
// 预检失败（状态未配置、订单不在缓存中）直接返回错误，不产生任何写入。
func (c *Coordinator) Submit(ctx context.Context, orderIDs []int64, orders map[int64]*refdomain.Order, openStatusID int64) (*domain.BatchResult, error) {
	if openStatusID <= 0 {
		return nil, domain.ErrStatusNotConfigured
	}

	// 先解析全部订单，确保任何写入发生前批次是完整可处理的
	resolved := make([]*refdomain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		order, ok := orders[id]
		if !ok {
			return nil, fmt.Errorf("%w: order %d", domain.ErrUnknownOrder, id)
		}
		resolved = append(resolved, order)
	}

	result := &domain.BatchResult{
		States: make(map[int64]domain.State, len(orderIDs)),
	}
	for _, id := range orderIDs {
		result.States[id] = domain.StatePending
	}

	c.logger.InfoContext(ctx, "batch submission started",
		"order_count", len(resolved),
		"open_status_id", openStatusID,
	)

	for _, order := range resolved {
		step, err := c.convert(ctx, order, openStatusID, result)
		if err != nil {
			result.States[order.ID] = domain.StateFailed
			result.FailedOrderID = order.ID
			result.FailedStep = step
			result.Cause = err

			c.logger.ErrorContext(ctx, "batch submission stopped",
				"order_id", order.ID,
				"step", string(step),
				"success_count", result.SuccessCount,
				"error", err,
			)
			return result, nil
		}

		result.States[order.ID] = domain.StateStatusUpdated
		result.SuccessCount++
	}

	c.logger.InfoContext(ctx, "batch submission completed",
		"success_count", result.SuccessCount,
	)
	return result, nil
}

// convert 执行单个订单的四步转换，返回失败步骤与原因。
// 步骤顺序固定：Block → Allocation → Trade → 订单状态更新。
// 状态更新有意放在最后，前三步任何失败都让订单保持可重试的 New 状态。
func (c *Coordinator) convert(ctx context.Context, order *refdomain.Order, openStatusID int64, result *domain.BatchResult) (domain.Step, error) {
	// 1. 创建执行单元
	blockID, err := c.client.CreateBlock(ctx, CreateBlockRequest{
		SecurityID:  order.SecurityID,
		OrderTypeID: order.OrderTypeID,
	})
	if err != nil {
		return domain.StepBlockCreate, err
	}
	result.States[order.ID] = domain.StateBlockCreated

	// 2. 创建份额，依赖上一步返回的执行单元 ID
	if _, err := c.client.CreateAllocation(ctx, CreateAllocationRequest{
		OrderID:        order.ID,
		BlockID:        blockID,
		Quantity:       order.Quantity,
		FilledQuantity: decimal.Zero,
	}); err != nil {
		return domain.StepAllocationCreate, err
	}
	result.States[order.ID] = domain.StateAllocationCreated

	// 3. 创建交易，目的地与交易类型留空待交易台补录
	if _, err := c.client.CreateTrade(ctx, CreateTradeRequest{
		BlockID:        blockID,
		DestinationID:  nil,
		TradeTypeID:    nil,
		Quantity:       order.Quantity,
		FilledQuantity: decimal.Zero,
		Version:        1,
	}); err != nil {
		return domain.StepTradeCreate, err
	}
	result.States[order.ID] = domain.StateTradeCreated

	// 4. 更新订单状态为 Open，其余字段原样回传，携带当前版本号
	if err := c.client.UpdateOrder(ctx, order.ID, UpdateOrderRequest{
		BlotterID:      order.BlotterID,
		SecurityID:     order.SecurityID,
		Quantity:       order.Quantity,
		OrderTimestamp: order.OrderTimestamp,
		OrderTypeID:    order.OrderTypeID,
		OrderStatusID:  openStatusID,
		Version:        order.Version,
	}); err != nil {
		return domain.StepStatusUpdate, err
	}

	c.logger.InfoContext(ctx, "order converted",
		"order_id", order.ID,
		"block_id", blockID,
		"quantity", order.Quantity,
	)
	return "", nil
}
