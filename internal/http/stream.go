package http

import (
	"log"
	"net/http"
	"time"

	"AssemblyOrders/internal/events"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is already wide open on the rest of the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pingInterval = 30 * time.Second

// StreamOrders pushes order lifecycle events to a websocket client. A
// subscriber that falls behind misses events and should re-sync via
// GET /api/orders.
func (h *Handler) StreamOrders(hub *events.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, ch := hub.Subscribe()
		defer hub.Unsubscribe(id)

		// Drain client frames so close messages are processed.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case ev := <-ch:
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("stream write failed: %v", err)
					return
				}
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
