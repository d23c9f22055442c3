package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oddood7/scoutle/internal"
)

func main() {
	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := internal.NewLogger(cfg)
	metrics := internal.NewMetricsCollector(logger)

	cacheManager := internal.NewCacheManager(cfg)
	defer cacheManager.Close()

	store := internal.NewDatabaseManager(cfg, logger)
	defer store.Close()

	riotClient := internal.NewRiotClient(cfg, cacheManager, logger, metrics)

	var events internal.EventPublisher
	var natsClient *internal.NATSClient
	if cfg.NATSUrl != "" {
		natsClient, err = internal.NewNATSClient(cfg, logger)
		if err != nil {
			log.Fatalf("Error connecting to NATS: %v", err)
		}
		defer natsClient.Close()

		if _, err := natsClient.StartReportWorker(store); err != nil {
			log.Fatalf("Error starting report worker: %v", err)
		}
		events = natsClient
	}

	scout := internal.NewScout(riotClient, store, events, logger, metrics)
	rateLimiter := internal.NewRateLimiter(cfg, logger)

	loggingMiddleware := internal.NewLoggingMiddleware(logger, metrics)
	wrap := loggingMiddleware.Handler

	mux := http.NewServeMux()
	mux.HandleFunc("/", wrap(internal.IndexHandler(scout, store, cfg, logger)))
	mux.HandleFunc("/lookup", wrap(internal.LookupFormHandler(scout, store, rateLimiter, cfg, logger)))
	mux.HandleFunc("/api/lookup", wrap(internal.APILookupHandler(scout, rateLimiter, logger)))
	mux.HandleFunc("/api/status", wrap(internal.StatusHandler(scout, logger)))
	mux.HandleFunc("/api/history", wrap(internal.HistoryHandler(store, logger)))
	mux.HandleFunc("/healthz", wrap(internal.HealthHandler(logger)))
	mux.HandleFunc("/metrics", wrap(internal.MetricsHandler(metrics, logger)))

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: mux,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server_started").
			Component("main").
			Operation("listen").
			Meta("port", cfg.AppPort).
			Log()

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdown
	logger.Info("server_stopping").
		Component("main").
		Operation("shutdown").
		Log()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error").
			Component("main").
			Operation("shutdown").
			Err(err).
			Log()
	}
}
