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
	"github.com/kirillkom/syllabus-stats/internal/observability/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, bootstrap.Options{Service: "worker", ConnectQueue: true})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()
	logger := app.Logger

	// The status port serves statistics and metrics next to the consumer.
	statsRouter := httpadapter.NewRouter(cfg, httpadapter.Dependencies{
		Processor:      app.ProcessUC,
		Batches:        app.BatchUC,
		Stats:          app.Store,
		MetricsHandler: metrics.Handler(app.Registry),
		Logger:         logger,
	})
	statusServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           statsRouter.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("worker_status_listening", "port", cfg.WorkerMetricsPort)
		if err := statusServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_status_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = statusServer.Shutdown(shutdownCtx)
	}()

	err = app.Queue.SubscribeDocumentPaths(ctx, func(handlerCtx context.Context, path string) error {
		outcome := app.ProcessUC.ProcessDocument(handlerCtx, path)
		return outcome.Err
	})
	if err != nil {
		logger.Error("worker_subscription_failed", "error", err)
	}

	// SubscribeDocumentPaths returns once the drain is complete, so the
	// snapshot includes the last delivered document.
	snapshot := app.Store.Snapshot()
	logger.Info("worker_stopped", "authors", len(snapshot.Authors), "disciplines", len(snapshot.Disciplines))
	if cfg.ReportPath != "" {
		if err := app.Report.Write(context.Background(), snapshot, cfg.ReportPath); err != nil {
			logger.Error("report_write_failed", "path", cfg.ReportPath, "error", err)
		}
	}
}
