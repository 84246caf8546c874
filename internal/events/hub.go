// Package events is an in-process feed of order lifecycle changes,
// consumed by the /api/orders/stream websocket endpoint.
package events

import (
	"sync"
	"time"

	"AssemblyOrders/internal/models"

	"github.com/google/uuid"
)

const (
	OrderCreated = "order.created"
	OrderPaid    = "order.paid"
)

type Event struct {
	Type            string    `json:"type"`
	RazorpayOrderID string    `json:"razorpay_order_id"`
	Product         string    `json:"product,omitempty"`
	AmountPaise     int64     `json:"amount_paise,omitempty"`
	Status          string    `json:"status"`
	At              time.Time `json:"at"`
}

func FromOrder(typ string, order *models.Order) Event {
	return Event{
		Type:            typ,
		RazorpayOrderID: order.RazorpayOrderID,
		Product:         order.Product,
		AmountPaise:     order.AmountPaise,
		Status:          string(order.Status),
		At:              time.Now().UTC(),
	}
}

// Hub fans events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event and is expected to
// re-sync via GET /api/orders.
type Hub struct {
	mu   sync.Mutex
	subs map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Event)}
}

func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
