package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/domain/repository"
	"github.com/ecomarket/ecomarket/internal/pkg/upi"
)

// Verifier decides whether a claimed external transaction reference counts
// as proof of payment for an order. Implementations range from buyer
// self-reporting to gateway callbacks; the transition table stays the same
// regardless of which variant is configured.
type Verifier interface {
	Name() string
	Verify(ctx context.Context, order *model.Order, transactionID string) error
}

// SelfReportVerifier accepts any well-formed buyer-supplied reference.
// There is no cryptographic or gateway proof behind it; swap in an
// attributable variant before trusting paid statuses for anything that costs
// money.
type SelfReportVerifier struct{}

func (SelfReportVerifier) Name() string { return "self-report" }

func (SelfReportVerifier) Verify(_ context.Context, _ *model.Order, transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return fmt.Errorf("%w: empty transaction id", domainErrors.ErrValidation)
	}
	return nil
}

// PaymentUseCase reconciles buyer-asserted payments against orders and
// produces UPI payment-request payloads.
type PaymentUseCase struct {
	orders    repository.OrderRepository
	verifiers map[model.PaymentMethod]Verifier
	now       func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase with the self-report verifier
// registered for every reconcilable method.
func NewPaymentUseCase(orders repository.OrderRepository) *PaymentUseCase {
	return &PaymentUseCase{
		orders: orders,
		verifiers: map[model.PaymentMethod]Verifier{
			model.PaymentMethodUPI:  SelfReportVerifier{},
			model.PaymentMethodCard: SelfReportVerifier{},
		},
		now: time.Now,
	}
}

// Verify matches a transaction reference to an order and advances it to
// paid. Reconciliation is valid only from awaiting_payment. Replaying the
// same reference on a verified order is a no-op; a different reference is
// rejected.
func (u *PaymentUseCase) Verify(ctx context.Context, orderID int64, transactionID string, method model.PaymentMethod) (*model.Order, error) {
	transactionID = strings.TrimSpace(transactionID)
	if orderID <= 0 || transactionID == "" {
		return nil, fmt.Errorf("%w: order id and transaction id required", domainErrors.ErrValidation)
	}
	verifier, ok := u.verifiers[method]
	if !ok {
		return nil, fmt.Errorf("%w: payment method %q does not reconcile", domainErrors.ErrValidation, method)
	}

	return u.orders.Transition(ctx, orderID, func(order *model.Order) error {
		if order.PaymentMethod != method {
			return fmt.Errorf("%w: order uses payment method %q", domainErrors.ErrValidation, order.PaymentMethod)
		}
		if order.TransactionID != nil {
			if *order.TransactionID == transactionID {
				return nil
			}
			return domainErrors.ErrAlreadyVerified
		}
		if order.Status != model.OrderStatusAwaitingPayment {
			return domainErrors.ErrInvalidTransition
		}
		if err := verifier.Verify(ctx, order, transactionID); err != nil {
			return err
		}

		now := u.now()
		order.TransactionID = &transactionID
		order.PaymentVerifiedAt = &now
		order.Status = model.OrderStatusPaid
		order.StatusHistory = append(order.StatusHistory, model.StatusChange{
			Status:    model.OrderStatusPaid,
			Timestamp: now,
			Actor:     actorLabel(order.BuyerID),
			Note:      "payment verified (" + verifier.Name() + ")",
		})
		order.UpdatedAt = now
		return nil
	})
}

// PaymentRequest assembles the UPI deep-link payload for an order. Returns
// ErrNoUPIDetails when no item carries seller UPI data; the caller falls
// back to a different payment method.
func (u *PaymentUseCase) PaymentRequest(ctx context.Context, orderID int64) (*upi.PaymentRequest, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return upi.BuildPaymentRequest(order)
}
