package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func fastRetry(attempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2,
	}
}

func TestCallRetriesUntilSuccess(t *testing.T) {
	exec := NewExecutor(Policy{Retry: fastRetry(3)}, nil)

	errLocked := errors.New("file locked")
	attempts := 0
	value, err := Call(context.Background(), exec, "docx.open", func(context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errLocked
		}
		return "opened", nil
	}, func(err error) Verdict {
		return Verdict{Retry: errors.Is(err, errLocked), CountFailed: true}
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if value != "opened" || attempts != 3 {
		t.Fatalf("expected opened after 3 attempts, got %q after %d", value, attempts)
	}
}

func TestExecuteStopsOnPermanentFailure(t *testing.T) {
	exec := NewExecutor(Policy{Retry: fastRetry(5)}, nil)

	errBroken := errors.New("not a zip file")
	attempts := 0
	err := exec.Execute(context.Background(), "docx.open", func(context.Context) error {
		attempts++
		return errBroken
	}, nil)
	if !errors.Is(err, errBroken) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Policy{
		Retry: fastRetry(1),
		Breaker: BreakerPolicy{
			Enabled:          true,
			MinRequests:      2,
			FailureRatio:     0.5,
			OpenTimeout:      time.Minute,
			HalfOpenMaxCalls: 1,
		},
	}, nil)

	errDown := errors.New("nats down")
	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "nats.publish", func(context.Context) error {
			return errDown
		}, Permanent)
		if !errors.Is(err, errDown) {
			t.Fatalf("expected failure on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "nats.publish", func(context.Context) error {
		t.Fatalf("open circuit must not call through")
		return nil
	}, Permanent)
	if !errors.Is(err, gobreaker.ErrOpenState) || !IsCircuitOpen(err) {
		t.Fatalf("expected open state error, got %v", err)
	}
}

func TestExecuteHonoursCancelledContext(t *testing.T) {
	exec := NewExecutor(Policy{Retry: fastRetry(3)}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := exec.Execute(ctx, "docx.open", func(context.Context) error {
		called = true
		return nil
	}, nil)
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected cancellation before the call, got %v (called=%v)", err, called)
	}
}

func TestNilExecutorCallsOnce(t *testing.T) {
	calls := 0
	value, err := Call(context.Background(), nil, "op", func(context.Context) (int, error) {
		calls++
		return 7, nil
	}, nil)
	if err != nil || value != 7 || calls != 1 {
		t.Fatalf("expected a single direct call, got value=%d calls=%d err=%v", value, calls, err)
	}
}
