package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/pkg/upi"
	"github.com/ecomarket/ecomarket/internal/usecase"
)

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	RegisterFn func(context.Context, int64, *model.Product) (*model.Product, error)
	ProductFn  func(context.Context, int64) (*model.Product, error)
	ProductsFn func(context.Context) ([]model.Product, error)
}

// RegisterProduct delegates to override or echoes the product with an id.
func (s CatalogFacadeStub) RegisterProduct(ctx context.Context, sellerID int64, product *model.Product) (*model.Product, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, sellerID, product)
	}
	stored := *product
	stored.ID = 1
	stored.SellerID = sellerID
	return &stored, nil
}

// Product returns a predefined product.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "bamboo toothbrush", Price: 129}, nil
}

// Products returns predefined catalog contents.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "bamboo toothbrush", Price: 129}}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn     func(context.Context, int64, []usecase.CartItem, string, model.PaymentMethod) (*model.Order, error)
	OrderFn        func(context.Context, int64) (*model.Order, error)
	BuyerOrdersFn  func(context.Context, int64) ([]model.Order, error)
	SellerOrdersFn func(context.Context, int64) ([]model.Order, error)
	AdvanceFn      func(context.Context, int64, model.OrderStatus, int64, string) (*model.Order, error)
}

// Checkout delegates to override or returns a pending order.
func (s OrderFacadeStub) Checkout(ctx context.Context, buyerID int64, items []usecase.CartItem, deliveryAddress string, method model.PaymentMethod) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, buyerID, items, deliveryAddress, method)
	}
	return &model.Order{ID: 1, BuyerID: buyerID, PaymentMethod: method, Status: method.InitialStatus()}, nil
}

// Order returns a predefined order owned by buyer 1.
func (s OrderFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, BuyerID: 1, Status: model.OrderStatusPending}, nil
}

// BuyerOrders returns predefined orders for given buyer.
func (s OrderFacadeStub) BuyerOrders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	if s.BuyerOrdersFn != nil {
		return s.BuyerOrdersFn(ctx, buyerID)
	}
	return []model.Order{{ID: 1, BuyerID: buyerID}}, nil
}

// SellerOrders returns predefined orders for given seller.
func (s OrderFacadeStub) SellerOrders(ctx context.Context, sellerID int64) ([]model.Order, error) {
	if s.SellerOrdersFn != nil {
		return s.SellerOrdersFn(ctx, sellerID)
	}
	return []model.Order{}, nil
}

// AdvanceOrder delegates to override or echoes the requested status.
func (s OrderFacadeStub) AdvanceOrder(ctx context.Context, orderID int64, status model.OrderStatus, actorID int64, note string) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, orderID, status, actorID, note)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// PaymentFacadeStub provides controllable behaviour for payment endpoints.
type PaymentFacadeStub struct {
	VerifyFn  func(context.Context, int64, string, model.PaymentMethod) (*model.Order, error)
	RequestFn func(context.Context, int64) (*upi.PaymentRequest, error)
}

// VerifyPayment delegates to override or returns a paid order.
func (s PaymentFacadeStub) VerifyPayment(ctx context.Context, orderID int64, transactionID string, method model.PaymentMethod) (*model.Order, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderID, transactionID, method)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPaid, TransactionID: &transactionID}, nil
}

// PaymentRequest delegates to override or returns a canned payload.
func (s PaymentFacadeStub) PaymentRequest(ctx context.Context, orderID int64) (*upi.PaymentRequest, error) {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, orderID)
	}
	return &upi.PaymentRequest{SellerUPIID: "seller@upi", Amount: "100.00", OrderID: orderID}, nil
}

// StatsFacadeStub provides controllable behaviour for statistics endpoints.
type StatsFacadeStub struct {
	StatisticsFn func(context.Context) (*model.StatsSummary, error)
	HealthFn     func(context.Context) error
}

// Statistics returns a predefined summary.
func (s StatsFacadeStub) Statistics(ctx context.Context) (*model.StatsSummary, error) {
	if s.StatisticsFn != nil {
		return s.StatisticsFn(ctx)
	}
	return &model.StatsSummary{UserCount: 1, ProductCount: 2, OrderCount: 3}, nil
}

// Health reports storage availability.
func (s StatsFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	StatsFacadeStub
}

// AdvanceCall stores information about AdvanceOrder invocations.
type AdvanceCall struct {
	OrderID int64
	Status  model.OrderStatus
	ActorID int64
	Note    string
}

// ReaperFacadeStub mimics reaper interactions with the market facade.
type ReaperFacadeStub struct {
	Batches   [][]model.Order
	StaleFn   func(context.Context, time.Time, int) ([]model.Order, error)
	AdvanceFn func(context.Context, int64, model.OrderStatus, int64, string) (*model.Order, error)
	Advances  []AdvanceCall

	mu             sync.Mutex
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReaperFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReaperFacadeStub) Unlock() { s.mu.Unlock() }

// StaleAwaitingPayment returns batches from configured queue.
func (s *ReaperFacadeStub) StaleAwaitingPayment(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, before, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// AdvanceOrder records cancel requests.
func (s *ReaperFacadeStub) AdvanceOrder(ctx context.Context, orderID int64, status model.OrderStatus, actorID int64, note string) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, orderID, status, actorID, note)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Advances = append(s.Advances, AdvanceCall{OrderID: orderID, Status: status, ActorID: actorID, Note: note})
	return &model.Order{ID: orderID, Status: status}, nil
}
