package model

// PaymentMethod identifies how a buyer settles an order. Wire values match
// the checkout payload: "cod", "card", "upi".
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodUPI:
		return true
	}
	return false
}

// InitialStatus returns the status a freshly created order starts in.
// Card orders are recorded as paid immediately: no processor round-trip is
// modeled yet, a real gateway slots in behind the payment verifier without
// touching the transition table.
func (m PaymentMethod) InitialStatus() OrderStatus {
	switch m {
	case PaymentMethodUPI:
		return OrderStatusAwaitingPayment
	case PaymentMethodCard:
		return OrderStatusPaid
	default:
		return OrderStatusPending
	}
}

// Reconcilable reports whether the method settles through an external
// transaction reference. COD orders never visit awaiting_payment.
func (m PaymentMethod) Reconcilable() bool {
	return m == PaymentMethodUPI || m == PaymentMethodCard
}
