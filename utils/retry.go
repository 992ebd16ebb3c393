package utils

import (
	"errors"
	"fmt"
	"time"
)

// PermanentError marks a failure that retrying cannot fix (malformed
// payload, 4xx response). RetryConfig.Do gives up on it immediately.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the retry loop treats it as non-transient.
func Permanent(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError anywhere in its
// chain.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// RetryConfig holds the parameters for the retry strategy: a fixed budget
// of attempts with a fixed inter-attempt delay. Sleep is injectable so
// tests run without real timers; nil means time.Sleep.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Logger      *Logger
	Sleep       func(time.Duration)
}

// Do executes fn until it succeeds, returns a permanent error, or the
// attempt budget runs out.
func (r *RetryConfig) Do(operationName string, fn func() error) error {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if IsPermanent(lastErr) {
			return fmt.Errorf("%s failed permanently: %w", operationName, lastErr)
		}

		if attempt < r.MaxAttempts {
			r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v — retrying in %v",
				operationName, attempt, r.MaxAttempts, lastErr, r.Delay)
			sleep(r.Delay)
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
