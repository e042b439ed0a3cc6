package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/syllabus-stats/internal/infrastructure/resilience"
)

const (
	workerGroup = "analyzers"
	// drainTimeout bounds how long shutdown waits for the in-flight document.
	drainTimeout = 2 * time.Minute
)

// Queue carries absolute document paths from the enqueue command to workers.
type Queue struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
	logger   *slog.Logger
}

type Options struct {
	ConnectTimeout time.Duration
	ReconnectWait  time.Duration
	MaxReconnects  int
	Executor       *resilience.Executor
	Logger         *slog.Logger
}

func New(url, subject string, options Options) (*Queue, error) {
	if subject == "" {
		return nil, errors.New("nats subject is empty")
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 30
	}

	conn, err := nats.Connect(
		url,
		nats.Name("syllabus-stats"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Queue{conn: conn, subject: subject, executor: options.Executor, logger: logger}, nil
}

func (q *Queue) Close() {
	if q.conn != nil {
		q.conn.Close()
	}
}

func (q *Queue) PublishDocumentPath(ctx context.Context, path string) error {
	publish := func(context.Context) error {
		if err := q.conn.Publish(q.subject, []byte(path)); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	var err error
	if q.executor != nil {
		err = q.executor.Execute(ctx, "nats.publish", publish, classifyNATSError)
	} else {
		err = publish(ctx)
	}
	return wrapTemporaryIfNeeded(err)
}

// SubscribeDocumentPaths hands every received path to handler until ctx is
// done, then drains the subscription and returns once the last handler call
// has finished. The handler is called from the NATS delivery goroutine, one
// message at a time.
func (q *Queue) SubscribeDocumentPaths(ctx context.Context, handler func(context.Context, string) error) error {
	sub, err := q.conn.QueueSubscribe(q.subject, workerGroup, func(msg *nats.Msg) {
		if ctx.Err() != nil {
			return
		}
		path := string(msg.Data)
		if err := handler(ctx, path); err != nil {
			q.logger.Warn("queued_document_failed", "path", path, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}
	if err := q.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}
	q.logger.Info("nats_subscribed", "subject", q.subject, "group", workerGroup)

	<-ctx.Done()
	closed := sub.StatusChanged(nats.SubscriptionClosed)
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := waitDrained(closed, sub.IsValid, drainTimeout); err != nil {
		return err
	}
	q.logger.Info("nats_drained", "subject", q.subject)
	return nil
}

// waitDrained blocks until the drained subscription is closed, which happens
// after the handler has returned for every delivered message.
func waitDrained(closed <-chan nats.SubStatus, valid func() bool, timeout time.Duration) error {
	if !valid() {
		return nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-closed:
		return nil
	case <-timer.C:
		if !valid() {
			return nil
		}
		return fmt.Errorf("nats drain subscription: not finished after %s", timeout)
	}
}
