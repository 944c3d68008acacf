package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/domain/repository"
)

// SystemActor identifies internally driven transitions (payment reaper).
const SystemActor int64 = 0

// CartItem is a checkout line reference. Prices and seller details are
// resolved server-side, never taken from the client.
type CartItem struct {
	ProductID int64
	Quantity  int
}

// OrderUseCase owns the order status state machine and the arithmetic that
// derives subtotal/tax/total at creation.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, users: users, now: time.Now}
}

// Create validates the checkout payload, snapshots product and seller data
// onto line items, derives totals, assigns the initial status for the payment
// method and persists the order.
func (u *OrderUseCase) Create(ctx context.Context, buyerID int64, items []CartItem, deliveryAddress string, method model.PaymentMethod) (*model.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", domainErrors.ErrValidation)
	}
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryAddress == "" {
		return nil, fmt.Errorf("%w: empty delivery address", domainErrors.ErrValidation)
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domainErrors.ErrValidation, method)
	}

	buyer, err := u.users.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		BuyerID:         buyer.ID,
		BuyerEmail:      buyer.Email,
		PaymentMethod:   method,
		DeliveryAddress: deliveryAddress,
	}

	sellers := map[int64]*model.User{}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", domainErrors.ErrValidation)
		}
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown product %d", domainErrors.ErrValidation, item.ProductID)
			}
			return nil, err
		}

		seller, ok := sellers[product.SellerID]
		if !ok {
			seller, err = u.users.GetByID(ctx, product.SellerID)
			if err != nil {
				return nil, err
			}
			sellers[product.SellerID] = seller
		}

		order.Items = append(order.Items, model.OrderItem{
			ProductID:      product.ID,
			Name:           product.Name,
			UnitPrice:      product.Price,
			Quantity:       item.Quantity,
			SellerID:       seller.ID,
			SellerName:     seller.Name,
			PaymentDetails: seller.PaymentDetails,
		})
	}

	order.ComputeTotals()
	now := u.now()
	order.Status = method.InitialStatus()
	order.StatusHistory = []model.StatusChange{{
		Status:    order.Status,
		Timestamp: now,
		Actor:     actorLabel(buyer.ID),
		Note:      "order created",
	}}
	order.CreatedAt = now
	order.UpdatedAt = now

	return u.orders.Create(ctx, order)
}

// Advance applies a requested status transition for the given actor.
// Requests outside the legal transition table fail and leave the order
// unchanged. The paid status is reachable only through payment
// reconciliation, never through a plain advance. The order is looked up
// first, so an unknown id fails NotFound no matter what was requested.
func (u *OrderUseCase) Advance(ctx context.Context, orderID int64, requested model.OrderStatus, actorID int64, note string) (*model.Order, error) {
	return u.orders.Transition(ctx, orderID, func(order *model.Order) error {
		if !model.ValidStatus(requested) {
			return fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, requested)
		}
		if requested == model.OrderStatusPaid {
			return domainErrors.ErrInvalidTransition
		}
		if !model.CanTransition(order.Status, requested) {
			return domainErrors.ErrInvalidTransition
		}
		if err := authorizeTransition(order, requested, actorID); err != nil {
			return err
		}
		now := u.now()
		order.Status = requested
		order.StatusHistory = append(order.StatusHistory, model.StatusChange{
			Status:    requested,
			Timestamp: now,
			Actor:     actorLabel(actorID),
			Note:      note,
		})
		order.UpdatedAt = now
		return nil
	})
}

// Get fetches a single order.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// ListByBuyer returns the buyer's orders, newest first.
func (u *OrderUseCase) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return u.orders.ListByBuyer(ctx, buyerID)
}

// ListBySeller returns orders containing any item sold by the given seller.
func (u *OrderUseCase) ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error) {
	return u.orders.ListBySeller(ctx, sellerID)
}

// StaleAwaitingPayment returns orders stuck in awaiting_payment since before
// the given time.
func (u *OrderUseCase) StaleAwaitingPayment(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	return u.orders.SelectStaleAwaitingPayment(ctx, before, limit)
}

// authorizeTransition enforces who may drive a transition: buyers cancel
// their own orders, sellers present in the items drive fulfillment, the
// system actor may do either.
func authorizeTransition(order *model.Order, requested model.OrderStatus, actorID int64) error {
	if actorID == SystemActor {
		return nil
	}
	if requested == model.OrderStatusCancelled {
		if actorID != order.BuyerID {
			return domainErrors.ErrForbidden
		}
		return nil
	}
	if !order.SellerIn(actorID) {
		return domainErrors.ErrForbidden
	}
	return nil
}

func actorLabel(actorID int64) string {
	if actorID == SystemActor {
		return "system"
	}
	return fmt.Sprintf("user:%d", actorID)
}
