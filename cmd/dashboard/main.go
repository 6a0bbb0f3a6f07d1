package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ngrassa/plateforme-electronique/internal/amqp"
	"github.com/ngrassa/plateforme-electronique/internal/billing/gateway"
	"github.com/ngrassa/plateforme-electronique/internal/config"
	apphttp "github.com/ngrassa/plateforme-electronique/internal/http"
	"github.com/ngrassa/plateforme-electronique/internal/services"
	"github.com/ngrassa/plateforme-electronique/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	client := gateway.New(cfg.BillingAPIURL, gateway.StaticToken(cfg.BillingAPIToken))
	dashboard := services.NewDashboardService(client, client, cfg.OwnerUserID)
	listing := services.NewListingEngine(client, cfg.OwnerUserID)

	srv := apphttp.NewServer(":"+cfg.Port, dashboard, listing, client, cfg.OwnerUserID, cfg.CacheTTL)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional broker wiring: consume billing change events to drop cached
	// views as soon as the billing services mutate data.
	if cfg.AMQPURL != "" {
		refresh := worker.NewRefreshWorker(srv, listing)
		if publisher, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue); err != nil {
			logger.Warn("AMQP publisher unavailable, continuing without it", "error", err)
		} else {
			srv.SetEventPublisher(publisher)
			defer publisher.Close()
		}
		go func() {
			err := amqp.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, refresh.HandleBillingEvent)
			if err != nil && ctx.Err() == nil {
				logger.Error("Billing event consumer stopped", "error", err)
			}
		}()
		logger.Info("Billing event consumer enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("No AMQP URL provided, relying on cache TTL for freshness")
	}

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting dashboard server",
		"port", cfg.Port,
		"billing_api", cfg.BillingAPIURL,
		"owner", cfg.OwnerUserID)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
