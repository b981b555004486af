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

// fakeOrderRepo is an in-memory OrderRepository with compare-and-swap
// semantics matching the MySQL implementation.
type fakeOrderRepo struct {
	orders map[int64]*domain.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*domain.Order), nextID: 1}
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	order.ID = r.nextID
	r.nextID++
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	existing, ok := r.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if existing.Version != order.Version {
		return domain.ErrVersionConflict
	}
	order.Version++
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id, version int64) error {
	existing, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	if existing.Version != version {
		return domain.ErrVersionConflict
	}
	delete(r.orders, id)
	return nil
}

// fakePublisher counts published events.
type fakePublisher struct {
	created, updated, deleted, blocks, trades int
	err                                       error
}

func (p *fakePublisher) PublishOrderCreated(ctx context.Context, e domain.OrderCreatedEvent) error {
	p.created++
	return p.err
}

func (p *fakePublisher) PublishOrderUpdated(ctx context.Context, e domain.OrderUpdatedEvent) error {
	p.updated++
	return p.err
}

func (p *fakePublisher) PublishOrderDeleted(ctx context.Context, e domain.OrderDeletedEvent) error {
	p.deleted++
	return p.err
}

func (p *fakePublisher) PublishBlockCreated(ctx context.Context, e domain.BlockCreatedEvent) error {
	p.blocks++
	return p.err
}

func (p *fakePublisher) PublishTradeCreated(ctx context.Context, e domain.TradeCreatedEvent) error {
	p.trades++
	return p.err
}

func newTestOrderService(repo domain.OrderRepository, pub domain.EventPublisher) *OrderService {
	return NewOrderService(repo, pub, metrics.New("test"), slog.Default())
}

func createCmd() CreateOrderCommand {
	return CreateOrderCommand{
		BlotterID:      1,
		SecurityID:     2,
		Quantity:       decimal.NewFromInt(100),
		OrderTimestamp: time.Now(),
		OrderTypeID:    3,
		OrderStatusID:  1,
	}
}

func TestCreateOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := newTestOrderService(repo, pub)

	order, err := svc.CreateOrder(context.Background(), createCmd())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.ID == 0 {
		t.Error("expected server assigned id")
	}
	if order.Version != 1 {
		t.Errorf("expected version 1, got %d", order.Version)
	}
	if pub.created != 1 {
		t.Errorf("expected 1 order created event, got %d", pub.created)
	}
}

func TestCreateOrderValidationFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := newTestOrderService(repo, pub)

	cmd := createCmd()
	cmd.Quantity = decimal.Zero
	if _, err := svc.CreateOrder(context.Background(), cmd); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Error("invalid order must not be persisted")
	}
	if pub.created != 0 {
		t.Error("invalid order must not publish an event")
	}
}

func TestCreateOrderSurvivesPublishFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newTestOrderService(repo, pub)

	order, err := svc.CreateOrder(context.Background(), createCmd())
	if err != nil {
		t.Fatalf("publish failure must not fail the create: %v", err)
	}
	if _, ok := repo.orders[order.ID]; !ok {
		t.Error("order should be persisted despite publish failure")
	}
}

func TestUpdateOrderIncrementsVersion(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := newTestOrderService(repo, pub)

	order, err := svc.CreateOrder(context.Background(), createCmd())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	updated, err := svc.UpdateOrder(context.Background(), UpdateOrderCommand{
		ID:             order.ID,
		BlotterID:      order.BlotterID,
		SecurityID:     order.SecurityID,
		Quantity:       order.Quantity,
		OrderTimestamp: order.OrderTimestamp,
		OrderTypeID:    order.OrderTypeID,
		OrderStatusID:  2,
		Version:        order.Version,
	})
	if err != nil {
		t.Fatalf("UpdateOrder returned error: %v", err)
	}
	if updated.Version != order.Version+1 {
		t.Errorf("expected version %d, got %d", order.Version+1, updated.Version)
	}
	if updated.OrderStatusID != 2 {
		t.Errorf("expected status 2, got %d", updated.OrderStatusID)
	}
	if pub.updated != 1 {
		t.Errorf("expected 1 order updated event, got %d", pub.updated)
	}
}

func TestUpdateOrderStaleVersion(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := newTestOrderService(repo, pub)

	order, err := svc.CreateOrder(context.Background(), createCmd())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	_, err = svc.UpdateOrder(context.Background(), UpdateOrderCommand{
		ID:             order.ID,
		BlotterID:      order.BlotterID,
		SecurityID:     order.SecurityID,
		Quantity:       order.Quantity,
		OrderTimestamp: order.OrderTimestamp,
		OrderTypeID:    order.OrderTypeID,
		OrderStatusID:  2,
		Version:        order.Version + 5,
	})
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if pub.updated != 0 {
		t.Error("conflicting update must not publish an event")
	}
}

func TestDeleteOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	pub := &fakePublisher{}
	svc := newTestOrderService(repo, pub)

	order, err := svc.CreateOrder(context.Background(), createCmd())
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}

	if err := svc.DeleteOrder(context.Background(), order.ID, order.Version+1); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict for stale delete, got %v", err)
	}
	if err := svc.DeleteOrder(context.Background(), order.ID, order.Version); err != nil {
		t.Fatalf("DeleteOrder returned error: %v", err)
	}
	if len(repo.orders) != 0 {
		t.Error("order should be gone")
	}
	if pub.deleted != 1 {
		t.Errorf("expected 1 order deleted event, got %d", pub.deleted)
	}
}
