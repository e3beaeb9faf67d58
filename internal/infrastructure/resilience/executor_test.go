package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func retryAll(error) ErrorClassification {
	return ErrorClassification{Retryable: true, RecordFailure: true}
}

func retryNone(error) ErrorClassification {
	return ErrorClassification{Retryable: false, RecordFailure: true}
}

func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BreakerEnabled: false,
	}
}

func TestExecuteRetriesUntilSuccess(t *testing.T) {
	executor := NewExecutor(fastConfig())

	attempts := 0
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, retryAll)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteStopsOnNonRetryable(t *testing.T) {
	executor := NewExecutor(fastConfig())

	attempts := 0
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		return errors.New("permanent")
	}, retryNone)
	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected single attempt, got %d", attempts)
	}
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	executor := NewExecutor(fastConfig())

	attempts := 0
	err := executor.Execute(context.Background(), "op", func(context.Context) error {
		attempts++
		return errors.New("transient")
	}, retryAll)
	if err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteRespectsCancelledContext(t *testing.T) {
	executor := NewExecutor(fastConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := executor.Execute(ctx, "op", func(context.Context) error {
		attempts++
		return nil
	}, retryAll)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Fatalf("expected no attempts on cancelled context, got %d", attempts)
	}
}

func TestBreakerOpensAfterFailureRatio(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 1
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerOpenTimeout = time.Minute
	executor := NewExecutor(cfg)

	boom := func(context.Context) error { return errors.New("boom") }
	for i := 0; i < 3; i++ {
		_ = executor.Execute(context.Background(), "op", boom, retryAll)
	}

	err := executor.Execute(context.Background(), "op", boom, retryAll)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("expected IsCircuitOpen to report true")
	}
}
