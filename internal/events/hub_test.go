package events

import (
	"testing"
	"time"

	"AssemblyOrders/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	hub := NewHub()
	id1, ch1 := hub.Subscribe()
	id2, ch2 := hub.Subscribe()
	defer hub.Unsubscribe(id1)
	defer hub.Unsubscribe(id2)

	order := &models.Order{RazorpayOrderID: "order_1", Product: "mug", AmountPaise: 49900, Status: models.OrderCreated}
	hub.Publish(FromOrder(OrderCreated, order))

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, OrderCreated, ev.Type)
			assert.Equal(t, "order_1", ev.RazorpayOrderID)
			assert.Equal(t, "created", ev.Status)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestHubPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe()
	defer hub.Unsubscribe(id)

	// Overfill the subscriber buffer; Publish must return regardless.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < cap(ch)+10; i++ {
			hub.Publish(Event{Type: OrderPaid})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe()
	hub.Unsubscribe(id)

	_, open := <-ch
	require.False(t, open)

	// Repeat unsubscribe and publish after removal must be safe.
	hub.Unsubscribe(id)
	hub.Publish(Event{Type: OrderCreated})
}
