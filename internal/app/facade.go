package app

import (
	"context"
	"time"

	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/pkg/upi"
	"github.com/ecomarket/ecomarket/internal/usecase"
)

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// MarketFacade fronts the use cases with the single surface the HTTP layer
// and the reaper depend on.
type MarketFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	stats    *usecase.StatsUseCase
	health   HealthChecker
}

func NewMarketFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	stats *usecase.StatsUseCase,
	health HealthChecker,
) *MarketFacade {
	return &MarketFacade{auth: auth, catalog: catalog, orders: orders, payments: payments, stats: stats, health: health}
}

func (f *MarketFacade) Register(ctx context.Context, user *model.User, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, user, password)
}

func (f *MarketFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) UpdatePaymentDetails(ctx context.Context, userID int64, details *model.PaymentDetails) error {
	return f.auth.UpdatePaymentDetails(ctx, userID, details)
}

func (f *MarketFacade) RegisterProduct(ctx context.Context, sellerID int64, product *model.Product) (*model.Product, error) {
	return f.catalog.Register(ctx, sellerID, product)
}

func (f *MarketFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *MarketFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *MarketFacade) Checkout(ctx context.Context, buyerID int64, items []usecase.CartItem, deliveryAddress string, method model.PaymentMethod) (*model.Order, error) {
	return f.orders.Create(ctx, buyerID, items, deliveryAddress, method)
}

func (f *MarketFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *MarketFacade) BuyerOrders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return f.orders.ListByBuyer(ctx, buyerID)
}

func (f *MarketFacade) SellerOrders(ctx context.Context, sellerID int64) ([]model.Order, error) {
	return f.orders.ListBySeller(ctx, sellerID)
}

func (f *MarketFacade) AdvanceOrder(ctx context.Context, orderID int64, status model.OrderStatus, actorID int64, note string) (*model.Order, error) {
	return f.orders.Advance(ctx, orderID, status, actorID, note)
}

func (f *MarketFacade) StaleAwaitingPayment(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	return f.orders.StaleAwaitingPayment(ctx, before, limit)
}

func (f *MarketFacade) VerifyPayment(ctx context.Context, orderID int64, transactionID string, method model.PaymentMethod) (*model.Order, error) {
	return f.payments.Verify(ctx, orderID, transactionID, method)
}

func (f *MarketFacade) PaymentRequest(ctx context.Context, orderID int64) (*upi.PaymentRequest, error) {
	return f.payments.PaymentRequest(ctx, orderID)
}

func (f *MarketFacade) Statistics(ctx context.Context) (*model.StatsSummary, error) {
	return f.stats.Summary(ctx)
}

func (f *MarketFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
