package application

import (
	refdomain "github.com/wyfcoding/orderdesk/internal/refdata/domain"
)

// Selector 维护操作员勾选的订单集合与当前状态过滤器。
// 纯内存状态，不做任何 I/O；勾选操作不会隐式改变过滤器，
// 选择集只在操作员显式清除或整批刷新数据时清空。
type Selector struct {
	selected map[int64]struct{}
	filterID int64
}

// NewSelector 创建选择器
func NewSelector() *Selector {
	return &Selector{selected: make(map[int64]struct{})}
}

// SetFilter 设置状态过滤器
func (s *Selector) SetFilter(statusID int64) {
	s.filterID = statusID
}

// FilterID 返回当前状态过滤器
func (s *Selector) FilterID() int64 {
	return s.filterID
}

// ToggleOne 勾选或取消勾选单个订单
func (s *Selector) ToggleOne(orderID int64, checked bool) {
	if checked {
		s.selected[orderID] = struct{}{}
	} else {
		delete(s.selected, orderID)
	}
}

// ToggleAll 勾选或取消勾选一组订单
func (s *Selector) ToggleAll(orderIDs []int64, checked bool) {
	for _, id := range orderIDs {
		s.ToggleOne(id, checked)
	}
}

// Clear 清空选择集
func (s *Selector) Clear() {
	s.selected = make(map[int64]struct{})
}

// Selected 返回订单是否被勾选
func (s *Selector) Selected(orderID int64) bool {
	_, ok := s.selected[orderID]
	return ok
}

// Visible 返回状态等于过滤器的订单子序列，保持原有相对顺序
func Visible(orders []*refdomain.Order, filterID int64) []*refdomain.Order {
	visible := make([]*refdomain.Order, 0, len(orders))
	for _, o := range orders {
		if o.OrderStatusID == filterID {
			visible = append(visible, o)
		}
	}
	return visible
}

// SelectedIDs 按 orders 的顺序返回被勾选订单的 ID 序列
func (s *Selector) SelectedIDs(orders []*refdomain.Order) []int64 {
	ids := make([]int64, 0, len(s.selected))
	for _, o := range orders {
		if s.Selected(o.ID) {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
