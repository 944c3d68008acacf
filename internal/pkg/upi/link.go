package upi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
)

// payeeName is the pn= field of every generated link.
const payeeName = "EcoMarket"

// PaymentRequest carries everything a client needs to pay for an order
// through a UPI app. DisplayString is the deep link third-party apps parse;
// its format is a de facto external interface and must not change.
type PaymentRequest struct {
	SellerUPIID   string `json:"seller_upi_id"`
	Amount        string `json:"amount"`
	OrderID       int64  `json:"order_id"`
	DisplayString string `json:"display_string"`
}

// FormatAmount renders a total with exactly two decimal digits.
func FormatAmount(total float64) string {
	return strconv.FormatFloat(total, 'f', 2, 64)
}

// Link builds the upi://pay deep link for the given payee and order.
func Link(upiID, amount string, orderID int64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		escape(upiID),
		escape(payeeName),
		escape(amount),
		escape(fmt.Sprintf("Order %d", orderID)),
	)
}

// BuildPaymentRequest extracts the first snapshotted seller UPI id from the
// order items and assembles the payment request payload. Orders whose items
// carry no UPI details cannot be paid this way; the caller falls back to a
// different payment method.
func BuildPaymentRequest(order *model.Order) (*PaymentRequest, error) {
	for _, item := range order.Items {
		if item.PaymentDetails == nil || item.PaymentDetails.UPI == nil {
			continue
		}
		id := item.PaymentDetails.UPI.UPIID
		if id == "" {
			continue
		}
		amount := FormatAmount(order.Total)
		return &PaymentRequest{
			SellerUPIID:   id,
			Amount:        amount,
			OrderID:       order.ID,
			DisplayString: Link(id, amount, order.ID),
		}, nil
	}
	return nil, domainErrors.ErrNoUPIDetails
}

// escape percent-encodes the way browsers' encodeURIComponent does: spaces
// become %20, never +.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
