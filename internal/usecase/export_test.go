package usecase

import "time"

// SetNow overrides the clock of an OrderUseCase in tests.
func SetNow(u *OrderUseCase, fn func() time.Time) {
	u.now = fn
}

// SetPaymentNow overrides the clock of a PaymentUseCase in tests.
func SetPaymentNow(u *PaymentUseCase, fn func() time.Time) {
	u.now = fn
}
