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

	"go.uber.org/zap"

	"stratagist-backend/infrastructure/config"
	"stratagist-backend/infrastructure/di"
	"stratagist-backend/interfaces/http/rest"
	"stratagist-backend/pkg/observability"
)

const serviceName = "stratagist-backend"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer cleanup()

	if cfg.EnableTracing {
		tp, err := observability.InitTracing(ctx, serviceName, cfg.Environment, cfg.OTLPEndpoint)
		if err != nil {
			container.Logger.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				container.Logger.Error("Tracer shutdown error", zap.Error(err))
			}
		}()
	}

	router := rest.NewRouter(
		container.CommandBus,
		container.QueryBus,
		container.Metrics,
		rest.Options{
			EnableCORS:     cfg.EnableCORS,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			EnableMetrics:  cfg.EnableMetrics,
			EnableTracing:  cfg.EnableTracing,
			Debug:          !cfg.IsProduction(),
		},
		container.Logger,
	)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("storage", cfg.StorageBackend),
			zap.Bool("external_extraction", cfg.ExternalExtractionEnabled()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	// stderr sync fails on some platforms; nothing to do about it
	_ = container.Logger.Sync()
	log.Println("Server stopped")
}
