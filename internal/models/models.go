package models

import "time"

type OrderStatus string

const (
	OrderCreated OrderStatus = "created"
	OrderPaid    OrderStatus = "paid"
)

// Order is one row in the orders table. RazorpayOrderID is the natural
// external key, assigned by the gateway at creation time. PaymentID,
// Signature and VerifiedAt stay nil until a payment callback passes
// signature verification.
type Order struct {
	ID              int64       `json:"id"`
	RazorpayOrderID string      `json:"razorpay_order_id"`
	PaymentID       *string     `json:"razorpay_payment_id"`
	Signature       *string     `json:"razorpay_signature"`
	Product         string      `json:"product"`
	Qty             int         `json:"qty"`
	AmountPaise     int64       `json:"amount_paise"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	VerifiedAt      *time.Time  `json:"verified_at"`
}
