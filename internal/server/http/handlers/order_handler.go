package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/server/http/dto"
	"github.com/ecomarket/ecomarket/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]usecase.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), items, req.DeliveryAddress, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// List handles GET /api/orders. The role query parameter switches between the
// buyer view (default) and the seller view.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)

	var (
		orders []model.Order
		err    error
	)
	if c.Query("role") == "seller" {
		orders, err = h.facade.SellerOrders(c.Request.Context(), userID)
	} else {
		orders, err = h.facade.BuyerOrders(c.Request.Context(), userID)
	}
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id. Only the buyer or a seller present in the
// items may view an order.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	userID := CurrentUserID(c)
	if order.BuyerID != userID && !order.SellerIn(userID) {
		c.Status(http.StatusForbidden)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Advance handles POST /api/orders/:id/status.
func (h *OrderHandler) Advance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.AdvanceOrder(c.Request.Context(), id, model.OrderStatus(req.Status), CurrentUserID(c), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid status transition"})
		case errors.Is(err, domainErrors.ErrValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:  item.ProductID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			SellerID:   item.SellerID,
			SellerName: item.SellerName,
		})
	}

	history := make([]dto.StatusChangeResponse, 0, len(order.StatusHistory))
	for _, change := range order.StatusHistory {
		history = append(history, dto.StatusChangeResponse{
			Status:    string(change.Status),
			Timestamp: change.Timestamp,
			Actor:     change.Actor,
			Note:      change.Note,
		})
	}

	return dto.OrderResponse{
		ID:                order.ID,
		BuyerID:           order.BuyerID,
		BuyerEmail:        order.BuyerEmail,
		Items:             items,
		Subtotal:          order.Subtotal,
		Tax:               order.Tax,
		Total:             order.Total,
		PaymentMethod:     string(order.PaymentMethod),
		DeliveryAddress:   order.DeliveryAddress,
		TransactionID:     order.TransactionID,
		PaymentVerifiedAt: order.PaymentVerifiedAt,
		Status:            string(order.Status),
		StatusHistory:     history,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}
