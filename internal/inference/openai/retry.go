package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/studymaster/internal/inference"
	"github.com/avast/retry-go"
)

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Malformed content is usually an incomplete or chatty answer
	if errors.Is(err, inference.ErrMalformedContent) {
		return true
	}

	errStr := err.Error()
	if strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

func withRetry(ctx context.Context, maxRetryAttempts uint, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err != nil && !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying AI provider call",
				"attempt", n+1,
				"error", err)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}
