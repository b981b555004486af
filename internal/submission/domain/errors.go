package domain

import "errors"

var (
	// ErrStatusNotConfigured 目标状态缩写在已加载的状态表中不存在
	ErrStatusNotConfigured = errors.New("order status not configured")
	// ErrUnknownOrder 选中的订单 ID 在本地缓存中不存在
	ErrUnknownOrder = errors.New("selected order not found in local cache")
)
