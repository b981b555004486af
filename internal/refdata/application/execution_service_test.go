package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/orderdesk/internal/refdata/domain"
	"github.com/wyfcoding/orderdesk/pkg/metrics"
)

// fakeExecutionRepo is an append-only in-memory ExecutionRepository.
type fakeExecutionRepo struct {
	blocks      map[int64]*domain.Block
	allocations []*domain.BlockAllocation
	trades      []*domain.Trade
	nextID      int64
}

func newFakeExecutionRepo() *fakeExecutionRepo {
	return &fakeExecutionRepo{blocks: make(map[int64]*domain.Block), nextID: 1}
}

func (r *fakeExecutionRepo) CreateBlock(ctx context.Context, block *domain.Block) error {
	block.ID = r.nextID
	r.nextID++
	copied := *block
	r.blocks[block.ID] = &copied
	return nil
}

func (r *fakeExecutionRepo) CreateAllocation(ctx context.Context, alloc *domain.BlockAllocation) error {
	alloc.ID = r.nextID
	r.nextID++
	copied := *alloc
	r.allocations = append(r.allocations, &copied)
	return nil
}

func (r *fakeExecutionRepo) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	trade.ID = r.nextID
	r.nextID++
	copied := *trade
	r.trades = append(r.trades, &copied)
	return nil
}

func (r *fakeExecutionRepo) GetBlock(ctx context.Context, id int64) (*domain.Block, error) {
	b, ok := r.blocks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *fakeExecutionRepo) ListAllocationsByBlock(ctx context.Context, blockID int64) ([]*domain.BlockAllocation, error) {
	var out []*domain.BlockAllocation
	for _, a := range r.allocations {
		if a.BlockID == blockID {
			out = append(out, a)
		}
	}
	return out, nil
}

func testTimestamp() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

type executionFixture struct {
	svc       *ExecutionService
	execRepo  *fakeExecutionRepo
	orderRepo *fakeOrderRepo
	order     *domain.Order
	block     *domain.Block
}

// newExecutionFixture seeds one order and one block.
func newExecutionFixture(t *testing.T) *executionFixture {
	execRepo := newFakeExecutionRepo()
	orderRepo := newFakeOrderRepo()
	svc := NewExecutionService(execRepo, orderRepo, &fakePublisher{}, metrics.New("test"), slog.Default())

	order := domain.NewOrder(1, 2, decimal.NewFromInt(100), testTimestamp(), 3, 1)
	if err := orderRepo.Create(context.Background(), order); err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	block, err := svc.CreateBlock(context.Background(), CreateBlockCommand{SecurityID: 2, OrderTypeID: 3})
	if err != nil {
		t.Fatalf("failed to seed block: %v", err)
	}

	return &executionFixture{svc: svc, execRepo: execRepo, orderRepo: orderRepo, order: order, block: block}
}

func (f *executionFixture) allocate(t *testing.T) *domain.BlockAllocation {
	alloc, err := f.svc.CreateAllocation(context.Background(), CreateAllocationCommand{
		OrderID:        f.order.ID,
		BlockID:        f.block.ID,
		Quantity:       f.order.Quantity,
		FilledQuantity: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("CreateAllocation returned error: %v", err)
	}
	return alloc
}

func TestCreateBlock(t *testing.T) {
	f := newExecutionFixture(t)
	if f.block.ID == 0 {
		t.Error("expected server assigned block id")
	}
}

func TestCreateAllocation(t *testing.T) {
	f := newExecutionFixture(t)
	alloc := f.allocate(t)
	if alloc.ID == 0 {
		t.Error("expected server assigned allocation id")
	}
}

func TestCreateAllocationQuantityMismatch(t *testing.T) {
	f := newExecutionFixture(t)

	_, err := f.svc.CreateAllocation(context.Background(), CreateAllocationCommand{
		OrderID:        f.order.ID,
		BlockID:        f.block.ID,
		Quantity:       decimal.NewFromInt(50),
		FilledQuantity: decimal.Zero,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for quantity mismatch, got %v", err)
	}
}

func TestCreateAllocationUnknownOrder(t *testing.T) {
	f := newExecutionFixture(t)

	_, err := f.svc.CreateAllocation(context.Background(), CreateAllocationCommand{
		OrderID:        999,
		BlockID:        f.block.ID,
		Quantity:       decimal.NewFromInt(100),
		FilledQuantity: decimal.Zero,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTrade(t *testing.T) {
	f := newExecutionFixture(t)
	f.allocate(t)

	trade, err := f.svc.CreateTrade(context.Background(), CreateTradeCommand{
		BlockID:        f.block.ID,
		Quantity:       f.order.Quantity,
		FilledQuantity: decimal.Zero,
		Version:        1,
	})
	if err != nil {
		t.Fatalf("CreateTrade returned error: %v", err)
	}
	if trade.DestinationID != nil || trade.TradeTypeID != nil {
		t.Error("destination and trade type should stay empty when not supplied")
	}
}

func TestCreateTradeQuantityMismatch(t *testing.T) {
	f := newExecutionFixture(t)
	f.allocate(t)

	_, err := f.svc.CreateTrade(context.Background(), CreateTradeCommand{
		BlockID:        f.block.ID,
		Quantity:       decimal.NewFromInt(1),
		FilledQuantity: decimal.Zero,
		Version:        1,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for quantity mismatch, got %v", err)
	}
}

func TestCreateTradeUnknownBlock(t *testing.T) {
	f := newExecutionFixture(t)

	_, err := f.svc.CreateTrade(context.Background(), CreateTradeCommand{
		BlockID:        777,
		Quantity:       decimal.NewFromInt(100),
		FilledQuantity: decimal.Zero,
		Version:        1,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
