package http

import (
	"net/http"

	"AssemblyOrders/internal/events"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	Router *chi.Mux
}

func NewServer(handler *Handler, hub *events.Hub) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", handler.Config)
		r.Post("/create-order", handler.CreateOrder)
		r.Post("/verify-payment", handler.VerifyPayment)
		r.Get("/orders", handler.ListOrders)
		r.Get("/orders/stream", handler.StreamOrders(hub))
		r.Get("/orders/{orderID}", handler.GetOrder)
	})

	return &Server{Router: r}
}
