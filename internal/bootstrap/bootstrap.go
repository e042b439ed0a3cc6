package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/syllabus-stats/internal/config"
	"github.com/kirillkom/syllabus-stats/internal/core/aggregate"
	"github.com/kirillkom/syllabus-stats/internal/core/domain"
	"github.com/kirillkom/syllabus-stats/internal/core/usecase"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/docx"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/queue/nats"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/report/xlsx"
	"github.com/kirillkom/syllabus-stats/internal/infrastructure/resilience"
	"github.com/kirillkom/syllabus-stats/internal/observability/logging"
	"github.com/kirillkom/syllabus-stats/internal/observability/metrics"
)

type Options struct {
	Service string
	// ConnectQueue dials NATS; the scan command runs without it.
	ConnectQueue bool
	// LogWriter defaults to stdout.
	LogWriter io.Writer
}

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Profile domain.LayoutProfile

	Store    *aggregate.Store
	Registry *prometheus.Registry
	Queue    *nats.Queue
	Report   *xlsx.Writer

	ProcessUC *usecase.ProcessDocumentUseCase
	BatchUC   *usecase.BatchUseCase
	EnqueueUC *usecase.EnqueueDocumentsUseCase

	closeFn func()
}

func New(cfg config.Config, opts Options) (*App, error) {
	writer := opts.LogWriter
	if writer == nil {
		writer = os.Stdout
	}
	logger := logging.NewWithWriter(writer, opts.Service, cfg.LogLevel, cfg.LogFormat)

	profile, err := config.LoadLayoutProfile(cfg.LayoutProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load layout profile: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Policy{
		Retry: resilience.RetryPolicy{
			MaxAttempts:    cfg.OpenRetryMaxAttempts,
			InitialBackoff: cfg.OpenRetryInitialBackoff,
			MaxBackoff:     cfg.OpenRetryMaxBackoff,
		},
		Breaker: resilience.BreakerPolicy{Enabled: cfg.OpenBreakerEnabled},
	}, logger)

	registry := metrics.NewRegistry()
	documentMetrics := metrics.NewDocumentMetrics(opts.Service, registry)

	store := aggregate.NewStore()
	host := docx.NewHost(docx.Options{Executor: executor, Logger: logger})
	processUC := usecase.NewProcessDocumentUseCase(host, store, profile, documentMetrics, logger)

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Profile:   profile,
		Store:     store,
		Registry:  registry,
		Report:    xlsx.NewWriter(),
		ProcessUC: processUC,
		BatchUC:   usecase.NewBatchUseCase(processUC, store, logger),
	}

	if opts.ConnectQueue {
		queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject, nats.Options{Executor: executor, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("init message queue: %w", err)
		}
		app.Queue = queue
		app.EnqueueUC = usecase.NewEnqueueDocumentsUseCase(queue)
		app.closeFn = queue.Close
	}
	return app, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
