package repository

import (
	"context"
	"time"

	"github.com/ecomarket/ecomarket/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Every
// operation is single-order-scoped; Transition serializes concurrent updates
// of the same order id.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error)

	// Transition loads the order under a per-row lock, applies mutate and
	// persists status, transaction reference, verification timestamp and
	// status history. A mutate error aborts without writing.
	Transition(ctx context.Context, id int64, mutate func(*model.Order) error) (*model.Order, error)

	SelectStaleAwaitingPayment(ctx context.Context, before time.Time, limit int) ([]model.Order, error)
	Recent(ctx context.Context, limit int) ([]model.Order, error)
	Count(ctx context.Context) (int64, error)
}
