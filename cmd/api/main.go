package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AssemblyOrders/internal/config"
	"AssemblyOrders/internal/db"
	"AssemblyOrders/internal/events"
	"AssemblyOrders/internal/gateway"
	internalhttp "AssemblyOrders/internal/http"
	"AssemblyOrders/internal/services"
	"AssemblyOrders/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.Razorpay.KeyID == "" {
		log.Printf("warning: no razorpay key configured, payment endpoints will return errors")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)
	gw := gateway.New(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.BaseURL,
		time.Duration(cfg.Razorpay.TimeoutSeconds)*time.Second,
	)
	hub := events.NewHub()
	orderSvc := &services.OrderService{
		Store:        st,
		Gateway:      gw,
		Events:       hub,
		KeyID:        cfg.Razorpay.KeyID,
		KeySecret:    cfg.Razorpay.KeySecret,
		DefaultLimit: cfg.Orders.DefaultLimit,
		MaxLimit:     cfg.Orders.MaxLimit,
	}

	h := internalhttp.NewHandler(orderSvc, cfg.Razorpay.KeyID)
	srv := internalhttp.NewServer(h, hub)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router,
	}

	go func() {
		log.Printf("api listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
