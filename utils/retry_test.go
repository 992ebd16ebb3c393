package utils

import (
	"errors"
	"testing"
	"time"
)

func testRetry(maxAttempts int, slept *[]time.Duration) *RetryConfig {
	return &RetryConfig{
		MaxAttempts: maxAttempts,
		Delay:       2 * time.Second,
		Logger:      NewLogger(),
		Sleep:       func(d time.Duration) { *slept = append(*slept, d) },
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	var slept []time.Duration
	r := testRetry(3, &slept)

	calls := 0
	err := r.Do("op", func() error {
		calls++
		if calls < 3 {
			return errors.New("timeout")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
	if len(slept) != 2 {
		t.Errorf("sleeps: got %d, want 2", len(slept))
	}
	for _, d := range slept {
		if d != 2*time.Second {
			t.Errorf("delay: got %v, want fixed 2s", d)
		}
	}
}

func TestRetryExhaustsBudget(t *testing.T) {
	var slept []time.Duration
	r := testRetry(3, &slept)

	calls := 0
	err := r.Do("op", func() error {
		calls++
		return errors.New("network error")
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	var slept []time.Duration
	r := testRetry(3, &slept)

	calls := 0
	err := r.Do("op", func() error {
		calls++
		return Permanent(errors.New("payload is neither JSON nor HTML"))
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if !IsPermanent(err) {
		t.Error("wrapped error should still classify as permanent")
	}
	if calls != 1 {
		t.Errorf("permanent failure must not be retried: got %d calls", calls)
	}
	if len(slept) != 0 {
		t.Errorf("no sleeps expected, got %d", len(slept))
	}
}
