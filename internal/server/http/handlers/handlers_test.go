package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/pkg/upi"
	"github.com/ecomarket/ecomarket/internal/server/http/dto"
	"github.com/ecomarket/ecomarket/internal/server/http/middleware"
	testhelpers "github.com/ecomarket/ecomarket/internal/test"
	"github.com/ecomarket/ecomarket/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Asha", Email: "asha@eco.in", Password: "secret"})
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}

	var payload dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Token != "token" || payload.User.Email != "asha@eco.in" || payload.User.Role != "buyer" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	resp = performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, []byte("not json"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domainErrors.ErrInvalidCredentials, http.StatusBadRequest},
		{"validation", domainErrors.ErrValidation, http.StatusUnprocessableEntity},
		{"duplicate", domainErrors.ErrAlreadyExists, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, *model.User, string) (*model.User, string, error) {
				return nil, "", tc.err
			}}
			body, _ := json.Marshal(dto.RegisterRequest{Email: "asha@eco.in", Password: "secret"})
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(stub).Register, nil, body)
			if resp.Code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "asha@eco.in", Password: "secret"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}

	stub := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(stub).Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	stub = testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", errors.New("boom")
	}}
	resp = performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(stub).Login, nil, body)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAuthHandlerUpdatePaymentDetails(t *testing.T) {
	body, _ := json.Marshal(model.PaymentDetails{UPI: &model.UPIDetails{UPIID: "green@upi"}})

	var gotUserID int64
	stub := testhelpers.AuthFacadeStub{UpdateDetailsFn: func(_ context.Context, userID int64, details *model.PaymentDetails) error {
		gotUserID = userID
		if details.UPI == nil || details.UPI.UPIID != "green@upi" {
			t.Fatalf("unexpected details: %+v", details)
		}
		return nil
	}}
	resp := performRequest(t, http.MethodPut, "/payment-details", "/payment-details", NewAuthHandler(stub).UpdatePaymentDetails, asUser(7), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotUserID != 7 {
		t.Fatalf("expected user id 7, got %d", gotUserID)
	}

	stub = testhelpers.AuthFacadeStub{UpdateDetailsFn: func(context.Context, int64, *model.PaymentDetails) error {
		return domainErrors.ErrValidation
	}}
	resp = performRequest(t, http.MethodPut, "/payment-details", "/payment-details", NewAuthHandler(stub).UpdatePaymentDetails, asUser(7), body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	stub = testhelpers.AuthFacadeStub{UpdateDetailsFn: func(context.Context, int64, *model.PaymentDetails) error {
		return domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodPut, "/payment-details", "/payment-details", NewAuthHandler(stub).UpdatePaymentDetails, asUser(7), body)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestProductHandlerCreate(t *testing.T) {
	body, _ := json.Marshal(dto.ProductRequest{Name: "Bamboo Brush", Price: 500})
	resp := performRequest(t, http.MethodPost, "/products", "/products", NewProductHandler(testhelpers.CatalogFacadeStub{}).Create, asUser(3), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var payload dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.ID != 1 || payload.SellerID != 3 || payload.Name != "Bamboo Brush" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	stub := testhelpers.CatalogFacadeStub{RegisterFn: func(context.Context, int64, *model.Product) (*model.Product, error) {
		return nil, domainErrors.ErrValidation
	}}
	resp = performRequest(t, http.MethodPost, "/products", "/products", NewProductHandler(stub).Create, asUser(3), body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/products", "/products", NewProductHandler(testhelpers.CatalogFacadeStub{}).Create, asUser(3), []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestProductHandlerListAndGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/products", "/products", NewProductHandler(testhelpers.CatalogFacadeStub{}).List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var products []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}

	stub := testhelpers.CatalogFacadeStub{ProductsFn: func(context.Context) ([]model.Product, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/products", "/products", NewProductHandler(stub).List, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/5", NewProductHandler(testhelpers.CatalogFacadeStub{}).Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	stub = testhelpers.CatalogFacadeStub{ProductFn: func(context.Context, int64) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/5", NewProductHandler(stub).Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/abc", NewProductHandler(testhelpers.CatalogFacadeStub{}).Get, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	request := dto.CreateOrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
		DeliveryAddress: "12 Green Lane",
		PaymentMethod:   "upi",
	}
	body, _ := json.Marshal(request)

	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).Create, asUser(2), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var payload dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.BuyerID != 2 || payload.Status != "awaiting_payment" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	failing := testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, []usecase.CartItem, string, model.PaymentMethod) (*model.Order, error) {
		return nil, domainErrors.ErrValidation
	}}
	resp = performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(failing).Create, asUser(2), body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	missing := testhelpers.OrderFacadeStub{CheckoutFn: func(context.Context, int64, []usecase.CartItem, string, model.PaymentMethod) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(missing).Create, asUser(2), body)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(testhelpers.OrderFacadeStub{}).Create, asUser(2), []byte(`{"items":[]}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerList(t *testing.T) {
	var buyerCalled, sellerCalled bool
	stub := testhelpers.OrderFacadeStub{
		BuyerOrdersFn: func(context.Context, int64) ([]model.Order, error) {
			buyerCalled = true
			return []model.Order{{ID: 1}}, nil
		},
		SellerOrdersFn: func(context.Context, int64) ([]model.Order, error) {
			sellerCalled = true
			return []model.Order{{ID: 2}}, nil
		},
	}

	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(stub).List, asUser(1), nil)
	if resp.Code != http.StatusOK || !buyerCalled || sellerCalled {
		t.Fatalf("expected buyer listing, got code=%d buyer=%v seller=%v", resp.Code, buyerCalled, sellerCalled)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders?role=seller", NewOrderHandler(stub).List, asUser(1), nil)
	if resp.Code != http.StatusOK || !sellerCalled {
		t.Fatalf("expected seller listing, got code=%d seller=%v", resp.Code, sellerCalled)
	}

	failing := testhelpers.OrderFacadeStub{BuyerOrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(failing).List, asUser(1), nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(testhelpers.OrderFacadeStub{}).Get, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for buyer, got %d", resp.Code)
	}

	sellerView := testhelpers.OrderFacadeStub{OrderFn: func(_ context.Context, orderID int64) (*model.Order, error) {
		return &model.Order{ID: orderID, BuyerID: 2, Items: []model.OrderItem{{SellerID: 1}}}, nil
	}}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(sellerView).Get, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for seller, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(testhelpers.OrderFacadeStub{}).Get, asUser(9), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	missing := testhelpers.OrderFacadeStub{OrderFn: func(context.Context, int64) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/5", NewOrderHandler(missing).Get, asUser(1), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/zero", NewOrderHandler(testhelpers.OrderFacadeStub{}).Get, asUser(1), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerAdvance(t *testing.T) {
	body, _ := json.Marshal(dto.AdvanceStatusRequest{Status: "confirmed"})

	resp := performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/5/status", NewOrderHandler(testhelpers.OrderFacadeStub{}).Advance, asUser(3), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Status != "confirmed" {
		t.Fatalf("unexpected status: %q", payload.Status)
	}

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domainErrors.ErrNotFound, http.StatusNotFound},
		{"forbidden", domainErrors.ErrForbidden, http.StatusForbidden},
		{"invalid transition", domainErrors.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"validation", domainErrors.ErrValidation, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := testhelpers.OrderFacadeStub{AdvanceFn: func(context.Context, int64, model.OrderStatus, int64, string) (*model.Order, error) {
				return nil, tc.err
			}}
			resp := performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/5/status", NewOrderHandler(stub).Advance, asUser(3), body)
			if resp.Code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, resp.Code)
			}
		})
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/5/status", NewOrderHandler(testhelpers.OrderFacadeStub{}).Advance, asUser(3), []byte("{}"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty status, got %d", resp.Code)
	}
}

func TestPaymentHandlerVerify(t *testing.T) {
	body, _ := json.Marshal(dto.VerifyPaymentRequest{OrderID: 5, TransactionID: "TXN-1", PaymentMethod: "upi"})
	handler := NewPaymentHandler(testhelpers.OrderFacadeStub{}, testhelpers.PaymentFacadeStub{})

	resp := performRequest(t, http.MethodPost, "/payments/verify", "/payments/verify", handler.Verify, asUser(2), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.VerifyPaymentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Success || payload.Order == nil || payload.Order.Status != "paid" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domainErrors.ErrNotFound, http.StatusNotFound},
		{"already verified", domainErrors.ErrAlreadyVerified, http.StatusConflict},
		{"invalid transition", domainErrors.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"validation", domainErrors.ErrValidation, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := testhelpers.PaymentFacadeStub{VerifyFn: func(context.Context, int64, string, model.PaymentMethod) (*model.Order, error) {
				return nil, tc.err
			}}
			handler := NewPaymentHandler(testhelpers.OrderFacadeStub{}, stub)
			resp := performRequest(t, http.MethodPost, "/payments/verify", "/payments/verify", handler.Verify, asUser(2), body)
			if resp.Code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, resp.Code)
			}
			var payload dto.VerifyPaymentResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload.Success {
				t.Fatal("expected success=false")
			}
		})
	}

	resp = performRequest(t, http.MethodPost, "/payments/verify", "/payments/verify", handler.Verify, asUser(2), []byte("{}"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestPaymentHandlerRequest(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.OrderFacadeStub{}, testhelpers.PaymentFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/orders/:id/payment-request", "/orders/5/payment-request", handler.Request, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.PaymentRequestResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Available || payload.SellerUPIID != "seller@upi" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id/payment-request", "/orders/5/payment-request", handler.Request, asUser(9), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	noUPI := NewPaymentHandler(testhelpers.OrderFacadeStub{}, testhelpers.PaymentFacadeStub{RequestFn: func(context.Context, int64) (*upi.PaymentRequest, error) {
		return nil, domainErrors.ErrNoUPIDetails
	}})
	resp = performRequest(t, http.MethodGet, "/orders/:id/payment-request", "/orders/5/payment-request", noUPI.Request, asUser(1), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Available {
		t.Fatal("expected available=false when seller has no UPI details")
	}

	missing := NewPaymentHandler(testhelpers.OrderFacadeStub{OrderFn: func(context.Context, int64) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}, testhelpers.PaymentFacadeStub{})
	resp = performRequest(t, http.MethodGet, "/orders/:id/payment-request", "/orders/5/payment-request", missing.Request, asUser(1), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id/payment-request", "/orders/bad/payment-request", handler.Request, asUser(1), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/statistics", "/statistics", NewStatsHandler(testhelpers.StatsFacadeStub{}).Statistics, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.StatsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.UserCount != 1 || payload.ProductCount != 2 || payload.OrderCount != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	failing := testhelpers.StatsFacadeStub{StatisticsFn: func(context.Context) (*model.StatsSummary, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/statistics", "/statistics", NewStatsHandler(failing).Statistics, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}

func TestStatsHandlerHealth(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/health", "/health", NewStatsHandler(testhelpers.StatsFacadeStub{}).Health, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	degraded := testhelpers.StatsFacadeStub{HealthFn: func(context.Context) error { return errors.New("down") }}
	resp = performRequest(t, http.MethodGet, "/health", "/health", NewStatsHandler(degraded).Health, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
