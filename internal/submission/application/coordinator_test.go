package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	refdomain "github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/internal/submission/domain"
)

const openStatusID = int64(2)

// fakeClient records remote calls in order and can be programmed to fail
// the nth call of a given step.
type fakeClient struct {
	calls     []string
	stepCalls map[domain.Step]int

	failStep   domain.Step
	failOnCall int
	failErr    error

	nextBlockID int64
	blocks      []CreateBlockRequest
	allocations []CreateAllocationRequest
	trades      []CreateTradeRequest
	updates     map[int64]UpdateOrderRequest
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		stepCalls:   make(map[domain.Step]int),
		nextBlockID: 100,
		updates:     make(map[int64]UpdateOrderRequest),
	}
}

// failAt makes the nth call of the given step return an error.
func (f *fakeClient) failAt(step domain.Step, n int) {
	f.failStep = step
	f.failOnCall = n
	f.failErr = errors.New("remote call failed: 500")
}

func (f *fakeClient) record(name string, step domain.Step) error {
	f.calls = append(f.calls, name)
	f.stepCalls[step]++
	if step == f.failStep && f.stepCalls[step] == f.failOnCall {
		return f.failErr
	}
	return nil
}

func (f *fakeClient) CreateBlock(ctx context.Context, req CreateBlockRequest) (int64, error) {
	if err := f.record("block", domain.StepBlockCreate); err != nil {
		return 0, err
	}
	f.blocks = append(f.blocks, req)
	f.nextBlockID++
	return f.nextBlockID, nil
}

func (f *fakeClient) CreateAllocation(ctx context.Context, req CreateAllocationRequest) (int64, error) {
	if err := f.record("allocation", domain.StepAllocationCreate); err != nil {
		return 0, err
	}
	f.allocations = append(f.allocations, req)
	return int64(len(f.allocations)), nil
}

func (f *fakeClient) CreateTrade(ctx context.Context, req CreateTradeRequest) (int64, error) {
	if err := f.record("trade", domain.StepTradeCreate); err != nil {
		return 0, err
	}
	f.trades = append(f.trades, req)
	return int64(len(f.trades)), nil
}

func (f *fakeClient) UpdateOrder(ctx context.Context, orderID int64, req UpdateOrderRequest) error {
	if err := f.record("update", domain.StepStatusUpdate); err != nil {
		return err
	}
	f.updates[orderID] = req
	return nil
}

func testOrder(id int64, quantity string) *refdomain.Order {
	return &refdomain.Order{
		ID:             id,
		BlotterID:      1,
		SecurityID:     10 + id,
		Quantity:       decimal.RequireFromString(quantity),
		OrderTimestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		OrderTypeID:    3,
		OrderStatusID:  1,
		Version:        id * 7,
	}
}

func orderMap(orders ...*refdomain.Order) map[int64]*refdomain.Order {
	m := make(map[int64]*refdomain.Order, len(orders))
	for _, o := range orders {
		m[o.ID] = o
	}
	return m
}

func newTestCoordinator(client ResourceClient) *Coordinator {
	return NewCoordinator(client, slog.Default())
}

func TestSubmitAllOrdersSucceed(t *testing.T) {
	client := newFakeClient()
	coordinator := newTestCoordinator(client)

	o1 := testOrder(1, "100")
	o2 := testOrder(2, "250.5")
	orders := orderMap(o1, o2)

	result, err := coordinator.Submit(context.Background(), []int64{1, 2}, orders, openStatusID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected batch to succeed, got %s", result.Summary())
	}
	if result.SuccessCount != 2 {
		t.Errorf("expected SuccessCount 2, got %d", result.SuccessCount)
	}
	for _, id := range []int64{1, 2} {
		if result.States[id] != domain.StateStatusUpdated {
			t.Errorf("order %d: expected state %q, got %q", id, domain.StateStatusUpdated, result.States[id])
		}
	}

	// Strictly sequential: all four calls for order 1 before any call for order 2
	want := []string{"block", "allocation", "trade", "update", "block", "allocation", "trade", "update"}
	if len(client.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(client.calls), client.calls)
	}
	for i, call := range want {
		if client.calls[i] != call {
			t.Errorf("call %d: expected %q, got %q", i, call, client.calls[i])
		}
	}
}

func TestSubmitRequestContents(t *testing.T) {
	client := newFakeClient()
	coordinator := newTestCoordinator(client)

	order := testOrder(5, "300")
	result, err := coordinator.Submit(context.Background(), []int64{5}, orderMap(order), openStatusID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected batch to succeed, got %s", result.Summary())
	}

	block := client.blocks[0]
	if block.SecurityID != order.SecurityID || block.OrderTypeID != order.OrderTypeID {
		t.Errorf("block request does not mirror order: %+v", block)
	}

	alloc := client.allocations[0]
	if alloc.OrderID != order.ID {
		t.Errorf("expected allocation orderId %d, got %d", order.ID, alloc.OrderID)
	}
	if !alloc.Quantity.Equal(order.Quantity) {
		t.Errorf("expected allocation quantity %s, got %s", order.Quantity, alloc.Quantity)
	}
	if !alloc.FilledQuantity.IsZero() {
		t.Errorf("expected zero filledQuantity, got %s", alloc.FilledQuantity)
	}

	trade := client.trades[0]
	if trade.BlockID != alloc.BlockID {
		t.Errorf("trade references block %d, allocation references %d", trade.BlockID, alloc.BlockID)
	}
	if trade.DestinationID != nil || trade.TradeTypeID != nil {
		t.Errorf("destination and trade type must be empty at submission: %+v", trade)
	}
	if !trade.Quantity.Equal(order.Quantity) {
		t.Errorf("expected trade quantity %s, got %s", order.Quantity, trade.Quantity)
	}
	if trade.Version != 1 {
		t.Errorf("expected trade version 1, got %d", trade.Version)
	}

	update, ok := client.updates[order.ID]
	if !ok {
		t.Fatal("order status update was not sent")
	}
	if update.OrderStatusID != openStatusID {
		t.Errorf("expected status %d, got %d", openStatusID, update.OrderStatusID)
	}
	if update.Version != order.Version {
		t.Errorf("expected version %d from the cached order, got %d", order.Version, update.Version)
	}
	if update.BlotterID != order.BlotterID || update.SecurityID != order.SecurityID ||
		!update.Quantity.Equal(order.Quantity) || update.OrderTypeID != order.OrderTypeID ||
		!update.OrderTimestamp.Equal(order.OrderTimestamp) {
		t.Errorf("update must resend the order's fields unchanged: %+v", update)
	}
}

func TestSubmitStopsAtFirstFailure(t *testing.T) {
	client := newFakeClient()
	// second allocation call belongs to the second order
	client.failAt(domain.StepAllocationCreate, 2)
	coordinator := newTestCoordinator(client)

	o1 := testOrder(1, "10")
	o2 := testOrder(2, "20")
	o3 := testOrder(3, "30")

	result, err := coordinator.Submit(context.Background(), []int64{1, 2, 3}, orderMap(o1, o2, o3), openStatusID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.OK() {
		t.Fatal("expected batch to fail")
	}
	if result.SuccessCount != 1 {
		t.Errorf("expected SuccessCount 1, got %d", result.SuccessCount)
	}
	if result.FailedOrderID != 2 {
		t.Errorf("expected failed order 2, got %d", result.FailedOrderID)
	}
	if result.FailedStep != domain.StepAllocationCreate {
		t.Errorf("expected failed step %q, got %q", domain.StepAllocationCreate, result.FailedStep)
	}
	if result.Cause == nil {
		t.Error("expected a cause")
	}

	if result.States[1] != domain.StateStatusUpdated {
		t.Errorf("order 1 should be fully converted, got %q", result.States[1])
	}
	if result.States[2] != domain.StateFailed {
		t.Errorf("order 2 should be failed, got %q", result.States[2])
	}
	// Order 3 must be untouched: still pending, no remote calls for it
	if result.States[3] != domain.StatePending {
		t.Errorf("order 3 should be pending, got %q", result.States[3])
	}
	want := []string{"block", "allocation", "trade", "update", "block", "allocation"}
	if len(client.calls) != len(want) {
		t.Errorf("expected %d calls (none for order 3), got %d: %v", len(want), len(client.calls), client.calls)
	}

	// Failed order keeps its created block, no compensation call exists
	if len(client.blocks) != 2 {
		t.Errorf("expected 2 created blocks, got %d", len(client.blocks))
	}
	if _, ok := client.updates[2]; ok {
		t.Error("failed order must not get a status update")
	}
}

func TestSubmitBlockCreateFailureLeavesNoRows(t *testing.T) {
	client := newFakeClient()
	// second block call belongs to the second order
	client.failAt(domain.StepBlockCreate, 2)
	coordinator := newTestCoordinator(client)

	o1 := testOrder(1, "100")
	o2 := testOrder(2, "100")
	o3 := testOrder(3, "100")

	result, err := coordinator.Submit(context.Background(), []int64{1, 2, 3}, orderMap(o1, o2, o3), openStatusID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.SuccessCount != 1 {
		t.Errorf("expected SuccessCount 1, got %d", result.SuccessCount)
	}
	if result.FailedOrderID != 2 || result.FailedStep != domain.StepBlockCreate {
		t.Errorf("expected order 2 failed at %q, got order %d at %q",
			domain.StepBlockCreate, result.FailedOrderID, result.FailedStep)
	}
	// Only the first order produced any rows
	if len(client.blocks) != 1 || len(client.allocations) != 1 || len(client.trades) != 1 || len(client.updates) != 1 {
		t.Errorf("expected exactly one row per collection, got %d/%d/%d/%d",
			len(client.blocks), len(client.allocations), len(client.trades), len(client.updates))
	}
	if result.States[3] != domain.StatePending {
		t.Errorf("order 3 should be untouched, got %q", result.States[3])
	}
}

func TestSubmitFailureAtStatusUpdate(t *testing.T) {
	client := newFakeClient()
	client.failAt(domain.StepStatusUpdate, 1)
	coordinator := newTestCoordinator(client)

	order := testOrder(1, "10")
	result, err := coordinator.Submit(context.Background(), []int64{1}, orderMap(order), openStatusID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.OK() {
		t.Fatal("expected batch to fail")
	}
	if result.FailedStep != domain.StepStatusUpdate {
		t.Errorf("expected failed step %q, got %q", domain.StepStatusUpdate, result.FailedStep)
	}
	if result.SuccessCount != 0 {
		t.Errorf("expected SuccessCount 0, got %d", result.SuccessCount)
	}
	// Block, allocation and trade were written before the failure and stay written
	if len(client.blocks) != 1 || len(client.allocations) != 1 || len(client.trades) != 1 {
		t.Errorf("expected the three creates to persist, got %d/%d/%d",
			len(client.blocks), len(client.allocations), len(client.trades))
	}
}

func TestSubmitUnknownOrder(t *testing.T) {
	client := newFakeClient()
	coordinator := newTestCoordinator(client)

	o1 := testOrder(1, "10")
	_, err := coordinator.Submit(context.Background(), []int64{1, 99}, orderMap(o1), openStatusID)
	if !errors.Is(err, domain.ErrUnknownOrder) {
		t.Fatalf("expected ErrUnknownOrder, got %v", err)
	}
	// Pre-flight failure: no remote writes at all, not even for order 1
	if len(client.calls) != 0 {
		t.Errorf("expected no remote calls, got %v", client.calls)
	}
}

func TestSubmitStatusNotConfigured(t *testing.T) {
	client := newFakeClient()
	coordinator := newTestCoordinator(client)

	o1 := testOrder(1, "10")
	_, err := coordinator.Submit(context.Background(), []int64{1}, orderMap(o1), 0)
	if !errors.Is(err, domain.ErrStatusNotConfigured) {
		t.Fatalf("expected ErrStatusNotConfigured, got %v", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("expected no remote calls, got %v", client.calls)
	}
}

func TestSubmitProcessingOrderFollowsInput(t *testing.T) {
	client := newFakeClient()
	coordinator := newTestCoordinator(client)

	o1 := testOrder(1, "10")
	o2 := testOrder(2, "20")
	o3 := testOrder(3, "30")

	result, err := coordinator.Submit(context.Background(), []int64{3, 1, 2}, orderMap(o1, o2, o3), openStatusID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected batch to succeed, got %s", result.Summary())
	}
	wantOrder := []int64{3, 1, 2}
	if len(client.allocations) != 3 {
		t.Fatalf("expected 3 allocations, got %d", len(client.allocations))
	}
	for i, alloc := range client.allocations {
		if alloc.OrderID != wantOrder[i] {
			t.Errorf("position %d: expected order %d, got %d", i, wantOrder[i], alloc.OrderID)
		}
	}
}
