package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单，参考数据控制台的核心实体。
// 更新必须携带最后观察到的版本号，远端以 compare-and-swap 方式拒绝过期版本。
type Order struct {
	ID             int64           `json:"id"`
	BlotterID      int64           `json:"blotterId"`
	SecurityID     int64           `json:"securityId"`
	Quantity       decimal.Decimal `json:"quantity"`
	OrderTimestamp time.Time       `json:"orderTimestamp"`
	OrderTypeID    int64           `json:"orderTypeId"`
	OrderStatusID  int64           `json:"orderStatusId"`
	Version        int64           `json:"version"`

	// 列表查询时内嵌的关联实体
	Blotter     *Blotter     `json:"blotter,omitempty"`
	Security    *Security    `json:"security,omitempty"`
	OrderStatus *LookupEntry `json:"orderStatus,omitempty"`
	OrderType   *LookupEntry `json:"orderType,omitempty"`
}

// NewOrder 创建新订单，版本号从 1 开始
func NewOrder(blotterID, securityID int64, quantity decimal.Decimal, ts time.Time, orderTypeID, orderStatusID int64) *Order {
	return &Order{
		BlotterID:      blotterID,
		SecurityID:     securityID,
		Quantity:       quantity,
		OrderTimestamp: ts,
		OrderTypeID:    orderTypeID,
		OrderStatusID:  orderStatusID,
		Version:        1,
	}
}

// Validate 校验订单
func (o *Order) Validate() error {
	if o.BlotterID <= 0 {
		return fmt.Errorf("%w: blotterId is required", ErrValidation)
	}
	if o.SecurityID <= 0 {
		return fmt.Errorf("%w: securityId is required", ErrValidation)
	}
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if o.OrderTypeID <= 0 {
		return fmt.Errorf("%w: orderTypeId is required", ErrValidation)
	}
	if o.OrderStatusID <= 0 {
		return fmt.Errorf("%w: orderStatusId is required", ErrValidation)
	}
	if o.OrderTimestamp.IsZero() {
		return fmt.Errorf("%w: orderTimestamp is required", ErrValidation)
	}
	return nil
}
