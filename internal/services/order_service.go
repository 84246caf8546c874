package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"AssemblyOrders/internal/events"
	"AssemblyOrders/internal/gateway"
	"AssemblyOrders/internal/models"
	"AssemblyOrders/internal/signature"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 20")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingField       = errors.New("missing required field")
	ErrCredentialsMissing = errors.New("razorpay credentials not configured")
	ErrSignatureMismatch  = errors.New("invalid payment signature")
)

const (
	MinQty   = 1
	MaxQty   = 20
	Currency = "INR"
)

// OrderStore is the persistence surface the service needs. Implemented
// by *store.Store.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	MarkPaid(ctx context.Context, orderID, paymentID, sig string, verifiedAt time.Time) error
	ListOrders(ctx context.Context, limit int) ([]*models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// Gateway creates the remote order. Implemented by *gateway.Client.
type Gateway interface {
	CreateOrder(ctx context.Context, order gateway.OrderRequest) (*gateway.OrderResponse, error)
}

type OrderService struct {
	Store        OrderStore
	Gateway      Gateway
	Events       *events.Hub
	KeyID        string
	KeySecret    string
	DefaultLimit int
	MaxLimit     int
}

type CreateOrderInput struct {
	Product         string
	Qty             int
	AmountPaise     int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
}

func (in CreateOrderInput) validate() error {
	for _, f := range []struct {
		name, value string
	}{
		{"product", in.Product},
		{"customer_name", in.CustomerName},
		{"customer_email", in.CustomerEmail},
		{"customer_phone", in.CustomerPhone},
		{"delivery_address", in.DeliveryAddress},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if in.Qty < MinQty || in.Qty > MaxQty {
		return ErrInvalidQuantity
	}
	if in.AmountPaise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// CreateOrder creates the remote order first and only persists on
// gateway success, so a gateway failure leaves no local row.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if s.KeyID == "" || s.KeySecret == "" {
		return nil, ErrCredentialsMissing
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	remote, err := s.Gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   in.AmountPaise,
		Currency: Currency,
		Receipt:  "5am_" + time.Now().UTC().Format("20060102150405"),
		Notes: map[string]string{
			"product":  in.Product,
			"qty":      strconv.Itoa(in.Qty),
			"customer": in.CustomerName,
		},
	})
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		RazorpayOrderID: remote.ID,
		Product:         in.Product,
		Qty:             in.Qty,
		AmountPaise:     in.AmountPaise,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		DeliveryAddress: in.DeliveryAddress,
		Status:          models.OrderCreated,
	}
	if err := s.Store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("order created id=%s product=%s qty=%d amount_paise=%d", order.RazorpayOrderID, order.Product, order.Qty, order.AmountPaise)
	s.publish(events.OrderCreated, order)
	return order, nil
}

// VerifyPayment recomputes the callback signature and, on a
// constant-time match, marks the order paid. The check is pure, so a
// repeat callback for an already paid order succeeds without touching
// the stored payment fields.
func (s *OrderService) VerifyPayment(ctx context.Context, orderID, paymentID, sig string) error {
	if s.KeySecret == "" {
		return ErrCredentialsMissing
	}

	if !signature.Verify(s.KeySecret, orderID, paymentID, sig) {
		log.Printf("signature mismatch order=%s", orderID)
		return ErrSignatureMismatch
	}

	if err := s.Store.MarkPaid(ctx, orderID, paymentID, sig, time.Now().UTC()); err != nil {
		return err
	}

	log.Printf("payment verified order=%s payment=%s", orderID, paymentID)
	s.publish(events.OrderPaid, &models.Order{RazorpayOrderID: orderID, Status: models.OrderPaid})
	return nil
}

func (s *OrderService) ListOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	if limit <= 0 {
		limit = s.DefaultLimit
	}
	if limit > s.MaxLimit {
		limit = s.MaxLimit
	}
	return s.Store.ListOrders(ctx, limit)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.Store.GetOrder(ctx, orderID)
}

func (s *OrderService) publish(typ string, order *models.Order) {
	if s.Events != nil {
		s.Events.Publish(events.FromOrder(typ, order))
	}
}
