package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"AssemblyOrders/internal/gateway"
	"AssemblyOrders/internal/models"
	"AssemblyOrders/internal/services"
	"AssemblyOrders/internal/store"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Orders *services.OrderService
	KeyID  string
}

func NewHandler(orders *services.OrderService, keyID string) *Handler {
	return &Handler{Orders: orders, KeyID: keyID}
}

type createOrderRequest struct {
	Product         string `json:"product"`
	Qty             int    `json:"qty"`
	AmountPaise     int64  `json:"amount_paise"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	DeliveryAddress string `json:"delivery_address"`
}

type createOrderResponse struct {
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount_paise"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Config hands the public key id to the checkout frontend.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	if h.KeyID == "" {
		writeError(w, http.StatusInternalServerError, "razorpay key not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key_id": h.KeyID})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	order, err := h.Orders.CreateOrder(r.Context(), services.CreateOrderInput{
		Product:         req.Product,
		Qty:             req.Qty,
		AmountPaise:     req.AmountPaise,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		var gwErr *gateway.Error
		switch {
		case errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrMissingField):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrCredentialsMissing):
			writeError(w, http.StatusInternalServerError, "razorpay credentials missing")
		case errors.As(err, &gwErr):
			writeError(w, http.StatusBadGateway, "razorpay order creation failed: "+gwErr.Body)
		case errors.Is(err, store.ErrDuplicateOrder):
			writeError(w, http.StatusConflict, "order already exists")
		default:
			writeError(w, http.StatusInternalServerError, "create order failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{
		OrderID:     order.RazorpayOrderID,
		AmountPaise: order.AmountPaise,
		Currency:    services.Currency,
		KeyID:       h.KeyID,
	})
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	err := h.Orders.VerifyPayment(r.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSignatureMismatch):
			writeError(w, http.StatusBadRequest, "payment verification failed: invalid signature")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, services.ErrCredentialsMissing):
			writeError(w, http.StatusInternalServerError, "razorpay credentials missing")
		default:
			writeError(w, http.StatusInternalServerError, "verify payment failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "verified",
		"payment_id": req.RazorpayPaymentID,
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	orders, err := h.Orders.ListOrders(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list orders failed")
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.Orders.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "get order failed")
		return
	}
	writeJSON(w, http.StatusOK, order)
}
