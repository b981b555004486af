// Package mysql 参考数据服务 MySQL 仓储实现
package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
)

// LookupModel 缩写/描述查找表映射，五张表结构相同，按 kind 选择表名
type LookupModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Abbreviation string    `gorm:"column:abbreviation;type:varchar(10);uniqueIndex;not null"`
	Description  string    `gorm:"column:description;type:varchar(100);not null"`
	Version      int64     `gorm:"column:version;not null;default:1"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// tableFor 返回查找表类别对应的表名
func tableFor(kind domain.LookupKind) string {
	switch kind {
	case domain.KindSecurityType:
		return "security_types"
	case domain.KindOrderStatus:
		return "order_statuses"
	case domain.KindOrderType:
		return "order_types"
	case domain.KindTradeType:
		return "trade_types"
	case domain.KindDestination:
		return "destinations"
	default:
		return string(kind)
	}
}

// OrderStatusModel 订单状态表映射，供订单关联预加载使用
type OrderStatusModel struct {
	LookupModel
}

func (OrderStatusModel) TableName() string { return "order_statuses" }

// OrderTypeModel 订单类型表映射，供订单关联预加载使用
type OrderTypeModel struct {
	LookupModel
}

func (OrderTypeModel) TableName() string { return "order_types" }

// BlotterModel 交易簿表映射
type BlotterModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"column:name;type:varchar(50);uniqueIndex;not null"`
	Version   int64     `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (BlotterModel) TableName() string { return "blotters" }

// SecurityModel 证券表映射
type SecurityModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Ticker         string    `gorm:"column:ticker;type:varchar(12);uniqueIndex;not null"`
	Description    string    `gorm:"column:description;type:varchar(100)"`
	SecurityTypeID int64     `gorm:"column:security_type_id;index;not null"`
	Version        int64     `gorm:"column:version;not null;default:1"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (SecurityModel) TableName() string { return "securities" }

// OrderModel 订单表映射
type OrderModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement;column:id"`
	BlotterID      int64           `gorm:"column:blotter_id;index;not null"`
	SecurityID     int64           `gorm:"column:security_id;index;not null"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:decimal(20,8);not null"`
	OrderTimestamp time.Time       `gorm:"column:order_timestamp;not null"`
	OrderTypeID    int64           `gorm:"column:order_type_id;not null"`
	OrderStatusID  int64           `gorm:"column:order_status_id;index;not null"`
	Version        int64           `gorm:"column:version;not null;default:1"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`

	Blotter     *BlotterModel     `gorm:"foreignKey:BlotterID"`
	Security    *SecurityModel    `gorm:"foreignKey:SecurityID"`
	OrderStatus *OrderStatusModel `gorm:"foreignKey:OrderStatusID"`
	OrderType   *OrderTypeModel   `gorm:"foreignKey:OrderTypeID"`
}

func (OrderModel) TableName() string { return "orders" }

// BlockModel 执行单元表映射
type BlockModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	SecurityID  int64     `gorm:"column:security_id;index;not null"`
	OrderTypeID int64     `gorm:"column:order_type_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (BlockModel) TableName() string { return "blocks" }

// BlockAllocationModel 执行单元份额表映射
type BlockAllocationModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID        int64           `gorm:"column:order_id;index;not null"`
	BlockID        int64           `gorm:"column:block_id;index;not null"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:decimal(20,8);not null"`
	FilledQuantity decimal.Decimal `gorm:"column:filled_quantity;type:decimal(20,8);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (BlockAllocationModel) TableName() string { return "block_allocations" }

// TradeModel 交易表映射
type TradeModel struct {
	ID             int64           `gorm:"primaryKey;autoIncrement;column:id"`
	BlockID        int64           `gorm:"column:block_id;index;not null"`
	DestinationID  *int64          `gorm:"column:destination_id"`
	TradeTypeID    *int64          `gorm:"column:trade_type_id"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:decimal(20,8);not null"`
	FilledQuantity decimal.Decimal `gorm:"column:filled_quantity;type:decimal(20,8);not null"`
	Version        int64           `gorm:"column:version;not null;default:1"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (TradeModel) TableName() string { return "trades" }

// --- mapping helpers ---

func toLookupEntry(m *LookupModel) *domain.LookupEntry {
	if m == nil {
		return nil
	}
	return &domain.LookupEntry{
		ID:           m.ID,
		Abbreviation: m.Abbreviation,
		Description:  m.Description,
		Version:      m.Version,
	}
}

func toLookupModel(e *domain.LookupEntry) *LookupModel {
	if e == nil {
		return nil
	}
	return &LookupModel{
		ID:           e.ID,
		Abbreviation: e.Abbreviation,
		Description:  e.Description,
		Version:      e.Version,
	}
}

func toOrderStatus(m *OrderStatusModel) *domain.LookupEntry {
	if m == nil {
		return nil
	}
	return toLookupEntry(&m.LookupModel)
}

func toOrderType(m *OrderTypeModel) *domain.LookupEntry {
	if m == nil {
		return nil
	}
	return toLookupEntry(&m.LookupModel)
}

func toBlotter(m *BlotterModel) *domain.Blotter {
	if m == nil {
		return nil
	}
	return &domain.Blotter{
		ID:      m.ID,
		Name:    m.Name,
		Version: m.Version,
	}
}

func toSecurity(m *SecurityModel) *domain.Security {
	if m == nil {
		return nil
	}
	return &domain.Security{
		ID:             m.ID,
		Ticker:         m.Ticker,
		Description:    m.Description,
		SecurityTypeID: m.SecurityTypeID,
		Version:        m.Version,
	}
}

func toSecurityModel(s *domain.Security) *SecurityModel {
	if s == nil {
		return nil
	}
	return &SecurityModel{
		ID:             s.ID,
		Ticker:         s.Ticker,
		Description:    s.Description,
		SecurityTypeID: s.SecurityTypeID,
		Version:        s.Version,
	}
}

func toOrder(m *OrderModel) *domain.Order {
	if m == nil {
		return nil
	}
	return &domain.Order{
		ID:             m.ID,
		BlotterID:      m.BlotterID,
		SecurityID:     m.SecurityID,
		Quantity:       m.Quantity,
		OrderTimestamp: m.OrderTimestamp,
		OrderTypeID:    m.OrderTypeID,
		OrderStatusID:  m.OrderStatusID,
		Version:        m.Version,
		Blotter:        toBlotter(m.Blotter),
		Security:       toSecurity(m.Security),
		OrderStatus:    toOrderStatus(m.OrderStatus),
		OrderType:      toOrderType(m.OrderType),
	}
}

func toOrderModel(o *domain.Order) *OrderModel {
	if o == nil {
		return nil
	}
	return &OrderModel{
		ID:             o.ID,
		BlotterID:      o.BlotterID,
		SecurityID:     o.SecurityID,
		Quantity:       o.Quantity,
		OrderTimestamp: o.OrderTimestamp,
		OrderTypeID:    o.OrderTypeID,
		OrderStatusID:  o.OrderStatusID,
		Version:        o.Version,
	}
}
