package dto

import "time"

// OrderItemRequest references a product in a checkout payload. Prices are
// resolved server-side.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the checkout payload produced by the cart.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1"`
	DeliveryAddress string             `json:"delivery_address" binding:"required"`
	PaymentMethod   string             `json:"payment_method" binding:"required"`
}

// AdvanceStatusRequest asks for a status transition on an order.
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note,omitempty"`
}

// OrderItemResponse is a snapshotted line item.
type OrderItemResponse struct {
	ProductID  int64   `json:"product_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	SellerID   int64   `json:"seller_id"`
	SellerName string  `json:"seller_name"`
}

// StatusChangeResponse is an audit-trail entry.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Note      string    `json:"note,omitempty"`
}

// OrderResponse describes a stored order.
type OrderResponse struct {
	ID                int64                  `json:"id"`
	BuyerID           int64                  `json:"buyer_id"`
	BuyerEmail        string                 `json:"buyer_email"`
	Items             []OrderItemResponse    `json:"items"`
	Subtotal          float64                `json:"subtotal"`
	Tax               float64                `json:"tax"`
	Total             float64                `json:"total"`
	PaymentMethod     string                 `json:"payment_method"`
	DeliveryAddress   string                 `json:"delivery_address"`
	TransactionID     *string                `json:"transaction_id,omitempty"`
	PaymentVerifiedAt *time.Time             `json:"payment_verified_at,omitempty"`
	Status            string                 `json:"status"`
	StatusHistory     []StatusChangeResponse `json:"status_history,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}
