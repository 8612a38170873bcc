package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venues-backend/api"
	"venues-backend/config"
	"venues-backend/metrics"
	"venues-backend/store"
	"venues-backend/venues"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Venues API stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()
	collector := metrics.NewCollector("venues")

	venueStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	service := venues.NewService(store.NewInstrumented(venueStore, collector), logger)

	// Initialize the router
	router := api.NewRouter(cfg.APIBasePath)
	api.NewVenueHandlers(service, logger).Register(router)
	handler := api.NewHandler(router, logger, collector)

	switch cfg.Mode() {
	case config.ModeLambda:
		logger.Info("Starting Lambda handler",
			zap.String("table", cfg.TableName),
			zap.String("region", cfg.Region()),
		)
		lambda.Start(handler.HandleEvent)
		return nil
	default:
		return serveHTTP(cfg, logger, api.NewHTTPHandler(handler, collector, cfg.CORSAllowedOrigins))
	}
}

func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (venues.Store, error) {
	if cfg.StoreBackend == config.BackendMemory {
		logger.Warn("Using in-memory venue store; data is lost on exit")
		return store.NewMemoryStore(), nil
	}

	awsCfg, err := config.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client := config.NewDynamoDBClient(awsCfg, cfg)
	return store.NewDynamoStore(client, cfg.TableName, logger), nil
}

func serveHTTP(cfg *config.Config, logger *zap.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("table", cfg.TableName),
			zap.String("store", cfg.StoreBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
