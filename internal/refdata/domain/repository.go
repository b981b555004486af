package domain

import "context"

// LookupKind 查找表类别
type LookupKind string

const (
	KindSecurityType LookupKind = "securityType"
	KindOrderStatus  LookupKind = "orderStatus"
	KindOrderType    LookupKind = "orderType"
	KindTradeType    LookupKind = "tradeType"
	KindDestination  LookupKind = "destination"
)

// LookupRepository 查找表仓储，五张缩写/描述表共用一套操作
type LookupRepository interface {
	List(ctx context.Context, kind LookupKind) ([]*LookupEntry, error)
	Get(ctx context.Context, kind LookupKind, id int64) (*LookupEntry, error)
	Create(ctx context.Context, kind LookupKind, entry *LookupEntry) error
	// Update 以 compare-and-swap 方式更新，版本不匹配返回 ErrVersionConflict
	Update(ctx context.Context, kind LookupKind, entry *LookupEntry) error
	// Delete 以 compare-and-swap 方式删除，版本不匹配返回 ErrVersionConflict
	Delete(ctx context.Context, kind LookupKind, id, version int64) error
}

// BlotterRepository 交易簿仓储
type BlotterRepository interface {
	List(ctx context.Context) ([]*Blotter, error)
	Get(ctx context.Context, id int64) (*Blotter, error)
}

// SecurityRepository 证券仓储
type SecurityRepository interface {
	List(ctx context.Context) ([]*Security, error)
	Get(ctx context.Context, id int64) (*Security, error)
	Create(ctx context.Context, security *Security) error
	Update(ctx context.Context, security *Security) error
	Delete(ctx context.Context, id, version int64) error
}

// OrderRepository 订单仓储
type OrderRepository interface {
	// List 返回订单及其内嵌的关联实体
	List(ctx context.Context) ([]*Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, order *Order) error
	// Update 以 compare-and-swap 方式更新全部可变字段并递增版本号
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id, version int64) error
}

// ExecutionRepository 执行单元、份额与交易仓储，三类记录只增不改
type ExecutionRepository interface {
	CreateBlock(ctx context.Context, block *Block) error
	CreateAllocation(ctx context.Context, alloc *BlockAllocation) error
	CreateTrade(ctx context.Context, trade *Trade) error
	GetBlock(ctx context.Context, id int64) (*Block, error)
	ListAllocationsByBlock(ctx context.Context, blockID int64) ([]*BlockAllocation, error)
}
