package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/server/http/dto"
)

// PaymentHandler manages reconciliation endpoints.
type PaymentHandler struct {
	orders   OrderFacade
	payments PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(orders OrderFacade, payments PaymentFacade) *PaymentHandler {
	return &PaymentHandler{orders: orders, payments: payments}
}

// Verify handles POST /api/payments/verify.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.VerifyPaymentResponse{Success: false, Message: "malformed request"})
		return
	}

	order, err := h.payments.VerifyPayment(c.Request.Context(), req.OrderID, req.TransactionID, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.VerifyPaymentResponse{Success: false, Message: "order not found"})
		case errors.Is(err, domainErrors.ErrAlreadyVerified):
			c.JSON(http.StatusConflict, dto.VerifyPaymentResponse{Success: false, Message: "order already verified with a different transaction"})
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, dto.VerifyPaymentResponse{Success: false, Message: "order is not awaiting payment"})
		case errors.Is(err, domainErrors.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, dto.VerifyPaymentResponse{Success: false, Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.VerifyPaymentResponse{Success: false, Message: "internal error"})
		}
		return
	}

	response := toOrderResponse(order)
	c.JSON(http.StatusOK, dto.VerifyPaymentResponse{Success: true, Message: "payment verified", Order: &response})
}

// Request handles GET /api/orders/:id/payment-request.
func (h *PaymentHandler) Request(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.orders.Order(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if order.BuyerID != CurrentUserID(c) {
		c.Status(http.StatusForbidden)
		return
	}

	request, err := h.payments.PaymentRequest(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNoUPIDetails):
			c.JSON(http.StatusOK, dto.PaymentRequestResponse{Available: false, OrderID: id})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentRequestResponse{
		Available:     true,
		SellerUPIID:   request.SellerUPIID,
		Amount:        request.Amount,
		OrderID:       request.OrderID,
		DisplayString: request.DisplayString,
	})
}
