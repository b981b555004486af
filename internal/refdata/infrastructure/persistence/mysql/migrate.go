package mysql

import (
	"fmt"

	"github.com/wyfcoding/orderdesk/pkg/db"
)

// AutoMigrate 建立全部数据表结构。
// 五张查找表共用同一模型，security_types、trade_types、destinations
// 通过显式表名迁移，order_statuses 与 order_types 有独立模型。
func AutoMigrate(database *db.DB) error {
	for _, table := range []string{"security_types", "trade_types", "destinations"} {
		if err := database.Table(table).AutoMigrate(&LookupModel{}); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", table, err)
		}
	}

	return database.AutoMigrate(
		&OrderStatusModel{},
		&OrderTypeModel{},
		&BlotterModel{},
		&SecurityModel{},
		&OrderModel{},
		&BlockModel{},
		&BlockAllocationModel{},
		&TradeModel{},
	)
}
