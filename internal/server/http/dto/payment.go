package dto

// VerifyPaymentRequest carries a buyer-asserted transaction reference.
type VerifyPaymentRequest struct {
	OrderID       int64  `json:"order_id" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// VerifyPaymentResponse reports reconciliation outcome.
type VerifyPaymentResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Order   *OrderResponse `json:"order,omitempty"`
}

// PaymentRequestResponse carries the UPI deep-link payload for an order.
// Available is false when no item has seller UPI details; the client falls
// back to another payment method.
type PaymentRequestResponse struct {
	Available     bool   `json:"available"`
	SellerUPIID   string `json:"seller_upi_id,omitempty"`
	Amount        string `json:"amount,omitempty"`
	OrderID       int64  `json:"order_id"`
	DisplayString string `json:"display_string,omitempty"`
}
