package model

import (
	"math"
	"time"
)

// OrderStatus describes fulfillment/payment lifecycle stage.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusAwaitingPayment OrderStatus = "awaiting_payment"
	OrderStatusPaid            OrderStatus = "paid"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// TaxRate is the GST rate applied to every order subtotal.
const TaxRate = 0.18

// transitions lists legal status changes after creation. awaiting_payment to
// paid happens only through payment reconciliation, never via a plain
// status-advance request.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:         {OrderStatusCancelled},
	OrderStatusAwaitingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:            {OrderStatusConfirmed},
	OrderStatusConfirmed:       {OrderStatusShipped},
	OrderStatusShipped:         {OrderStatusDelivered},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known wire-level statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusAwaitingPayment, OrderStatusPaid,
		OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line item with product and seller data snapshotted at order
// creation. Later edits to the product or seller do not affect placed orders.
type OrderItem struct {
	ProductID      int64           `json:"product_id"`
	Name           string          `json:"name"`
	UnitPrice      float64         `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	SellerID       int64           `json:"seller_id"`
	SellerName     string          `json:"seller_name"`
	PaymentDetails *PaymentDetails `json:"seller_payment_details,omitempty"`
}

// Subtotal returns the item's contribution to the order subtotal.
func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// StatusChange is an audit-trail entry appended on every status transition.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Actor     string      `json:"actor"`
	Note      string      `json:"note,omitempty"`
}

// Order is the central entity of the marketplace.
type Order struct {
	ID                int64
	BuyerID           int64
	BuyerEmail        string
	Items             []OrderItem
	Subtotal          float64
	Tax               float64
	Total             float64
	PaymentMethod     PaymentMethod
	DeliveryAddress   string
	TransactionID     *string
	PaymentVerifiedAt *time.Time
	Status            OrderStatus
	StatusHistory     []StatusChange
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ComputeTotals derives subtotal, tax and total from the order items.
// Called once at creation; the fields are never recomputed afterwards.
func (o *Order) ComputeTotals() {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.Subtotal()
	}
	o.Subtotal = round2(subtotal)
	o.Tax = round2(o.Subtotal * TaxRate)
	o.Total = round2(o.Subtotal + o.Tax)
}

// SellerIn reports whether the given user sells any item of the order.
func (o *Order) SellerIn(userID int64) bool {
	for _, item := range o.Items {
		if item.SellerID == userID {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
