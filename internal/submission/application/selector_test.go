package application

import (
	"testing"

	refdomain "github.com/wyfcoding/orderdesk/internal/refdata/domain"
)

func statusOrder(id, statusID int64) *refdomain.Order {
	return &refdomain.Order{ID: id, OrderStatusID: statusID}
}

func TestVisibleKeepsRelativeOrder(t *testing.T) {
	orders := []*refdomain.Order{
		statusOrder(1, 1),
		statusOrder(2, 2),
		statusOrder(3, 1),
		statusOrder(4, 3),
		statusOrder(5, 1),
	}

	visible := Visible(orders, 1)
	want := []int64{1, 3, 5}
	if len(visible) != len(want) {
		t.Fatalf("expected %d visible orders, got %d", len(want), len(visible))
	}
	for i, id := range want {
		if visible[i].ID != id {
			t.Errorf("position %d: expected order %d, got %d", i, id, visible[i].ID)
		}
	}
}

func TestVisibleNoMatches(t *testing.T) {
	orders := []*refdomain.Order{statusOrder(1, 1)}
	if got := Visible(orders, 9); len(got) != 0 {
		t.Errorf("expected no visible orders, got %d", len(got))
	}
}

func TestSelectorToggle(t *testing.T) {
	s := NewSelector()

	s.ToggleOne(1, true)
	s.ToggleOne(2, true)
	if !s.Selected(1) || !s.Selected(2) {
		t.Error("orders 1 and 2 should be selected")
	}

	s.ToggleOne(1, false)
	if s.Selected(1) {
		t.Error("order 1 should be deselected")
	}
	if !s.Selected(2) {
		t.Error("order 2 should remain selected")
	}
}

func TestSelectorToggleAll(t *testing.T) {
	s := NewSelector()

	s.ToggleAll([]int64{1, 2, 3}, true)
	for _, id := range []int64{1, 2, 3} {
		if !s.Selected(id) {
			t.Errorf("order %d should be selected", id)
		}
	}

	s.ToggleAll([]int64{1, 3}, false)
	if s.Selected(1) || s.Selected(3) {
		t.Error("orders 1 and 3 should be deselected")
	}
	if !s.Selected(2) {
		t.Error("order 2 should remain selected")
	}
}

func TestSelectorFilterChangeKeepsSelection(t *testing.T) {
	s := NewSelector()
	s.SetFilter(1)
	s.ToggleOne(7, true)

	// Changing the filter only hides rows, the selection set is untouched
	s.SetFilter(2)
	if s.FilterID() != 2 {
		t.Errorf("expected filter 2, got %d", s.FilterID())
	}
	if !s.Selected(7) {
		t.Error("selection must survive a filter change")
	}

	s.Clear()
	if s.Selected(7) {
		t.Error("selection should be empty after Clear")
	}
}

func TestSelectedIDsFollowOrderSequence(t *testing.T) {
	s := NewSelector()
	orders := []*refdomain.Order{
		statusOrder(5, 1),
		statusOrder(2, 1),
		statusOrder(9, 1),
	}

	s.ToggleOne(9, true)
	s.ToggleOne(5, true)

	ids := s.SelectedIDs(orders)
	want := []int64{5, 9}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("position %d: expected %d, got %d", i, id, ids[i])
		}
	}
}
