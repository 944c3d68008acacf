package handlers

import (
	"context"

	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/pkg/upi"
	"github.com/ecomarket/ecomarket/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, user *model.User, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	UpdatePaymentDetails(ctx context.Context, userID int64, details *model.PaymentDetails) error
}

// CatalogFacade provides product registration and lookup.
type CatalogFacade interface {
	RegisterProduct(ctx context.Context, sellerID int64, product *model.Product) (*model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, buyerID int64, items []usecase.CartItem, deliveryAddress string, method model.PaymentMethod) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
	BuyerOrders(ctx context.Context, buyerID int64) ([]model.Order, error)
	SellerOrders(ctx context.Context, sellerID int64) ([]model.Order, error)
	AdvanceOrder(ctx context.Context, orderID int64, status model.OrderStatus, actorID int64, note string) (*model.Order, error)
}

// PaymentFacade provides payment reconciliation operations.
type PaymentFacade interface {
	VerifyPayment(ctx context.Context, orderID int64, transactionID string, method model.PaymentMethod) (*model.Order, error)
	PaymentRequest(ctx context.Context, orderID int64) (*upi.PaymentRequest, error)
}

// StatsFacade provides aggregate counters and storage health.
type StatsFacade interface {
	Statistics(ctx context.Context) (*model.StatsSummary, error)
	Health(ctx context.Context) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
	StatsFacade
}
