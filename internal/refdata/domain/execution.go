package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Block 执行单元，将一个或多个订单聚合后对市场执行。
// 提交工作流中一个订单对应一个 Block，创建后不再修改。
type Block struct {
	ID          int64 `json:"id"`
	SecurityID  int64 `json:"securityId"`
	OrderTypeID int64 `json:"orderTypeId"`
}

// Validate 校验执行单元
func (b *Block) Validate() error {
	if b.SecurityID <= 0 {
		return fmt.Errorf("%w: securityId is required", ErrValidation)
	}
	if b.OrderTypeID <= 0 {
		return fmt.Errorf("%w: orderTypeId is required", ErrValidation)
	}
	return nil
}

// BlockAllocation 订单在执行单元中的份额。
// 创建时数量必须等于订单数量，已成交数量为零。
type BlockAllocation struct {
	ID             int64           `json:"id"`
	OrderID        int64           `json:"orderId"`
	BlockID        int64           `json:"blockId"`
	Quantity       decimal.Decimal `json:"quantity"`
	FilledQuantity decimal.Decimal `json:"filledQuantity"`
}

// Validate 校验份额记录，orderQuantity 为被引用订单的数量
func (a *BlockAllocation) Validate(orderQuantity decimal.Decimal) error {
	if a.OrderID <= 0 {
		return fmt.Errorf("%w: orderId is required", ErrValidation)
	}
	if a.BlockID <= 0 {
		return fmt.Errorf("%w: blockId is required", ErrValidation)
	}
	if !a.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	// 数量守恒：份额数量必须等于订单数量
	if !a.Quantity.Equal(orderQuantity) {
		return fmt.Errorf("%w: allocation quantity %s does not match order quantity %s",
			ErrValidation, a.Quantity, orderQuantity)
	}
	if !a.FilledQuantity.IsZero() {
		return fmt.Errorf("%w: filledQuantity must be zero at creation", ErrValidation)
	}
	return nil
}

// Trade 对执行单元实际发生的市场交易。
// 提交工作流创建时目的地与交易类型允许为空，后续由交易台补录。
type Trade struct {
	ID             int64           `json:"id"`
	BlockID        int64           `json:"blockId"`
	DestinationID  *int64          `json:"destinationId"`
	TradeTypeID    *int64          `json:"tradeTypeId"`
	Quantity       decimal.Decimal `json:"quantity"`
	FilledQuantity decimal.Decimal `json:"filledQuantity"`
	Version        int64           `json:"version"`
}

// Validate 校验交易记录，blockQuantity 为执行单元的份额总量
func (t *Trade) Validate(blockQuantity decimal.Decimal) error {
	if t.BlockID <= 0 {
		return fmt.Errorf("%w: blockId is required", ErrValidation)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	// 数量守恒：交易数量必须等于执行单元份额总量
	if !t.Quantity.Equal(blockQuantity) {
		return fmt.Errorf("%w: trade quantity %s does not match block quantity %s",
			ErrValidation, t.Quantity, blockQuantity)
	}
	if !t.FilledQuantity.IsZero() {
		return fmt.Errorf("%w: filledQuantity must be zero at creation", ErrValidation)
	}
	return nil
}
