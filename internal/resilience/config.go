package resilience

import (
	"time"

	"go.uber.org/zap"
)

// FromRetrySettings builds the classifier retry policy from config
// values, keeping the built-in value for any non-positive setting.
func FromRetrySettings(maxAttempts, initialBackoffMs, maxBackoffMs int) RetryConfig {
	cfg := ClassifierRetryConfig()
	if maxAttempts > 0 {
		cfg.MaxAttempts = maxAttempts
	}
	if initialBackoffMs > 0 {
		cfg.InitialBackoff = time.Duration(initialBackoffMs) * time.Millisecond
	}
	if maxBackoffMs > 0 {
		cfg.MaxBackoff = time.Duration(maxBackoffMs) * time.Millisecond
	}
	return cfg
}

// FromCircuitSettings returns a breaker that logs its transitions, or nil
// when failureThreshold is not positive.
func FromCircuitSettings(service string, failureThreshold, resetTimeoutSecs int) *CircuitBreaker {
	if failureThreshold <= 0 {
		return nil
	}
	return NewCircuitBreaker(failureThreshold, time.Duration(resetTimeoutSecs)*time.Second, func(from, to CircuitState) {
		zap.L().Warn("circuit state changed",
			zap.String("service", service),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	})
}
