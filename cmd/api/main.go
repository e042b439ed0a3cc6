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

	"github.com/joho/godotenv"

	httpadapter "github.com/kirillkom/syllabus-stats/internal/adapters/http"
	"github.com/kirillkom/syllabus-stats/internal/bootstrap"
	"github.com/kirillkom/syllabus-stats/internal/config"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/docx"
	"github.com/kirillkom/syllabus-stats/internal/observability/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, bootstrap.Options{Service: "api"})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()
	logger := app.Logger

	router := httpadapter.NewRouter(cfg, httpadapter.Dependencies{
		Processor:      app.ProcessUC,
		Batches:        app.BatchUC,
		Stats:          app.Store,
		Discover:       docx.Discover,
		Metrics:        metrics.NewHTTPServerMetrics("api", app.Registry),
		MetricsHandler: metrics.Handler(app.Registry),
		Logger:         logger,
	}).Handler()
	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_failed", "error", err)
	}
}
