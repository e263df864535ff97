package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// RetryPolicy controls WithRetry's exponential backoff
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Logger         *slog.Logger
}

// DefaultRetryPolicy is used by WithRetry
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:    3,
	InitialBackoff: 1 * time.Second,
	MaxBackoff:     30 * time.Second,
}

// IsRetryable checks if an error is transient and worth retrying
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Throttling and server side failures from the generation APIs
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return retryableStatus(genaiErr.Code)
	}

	// Network timeouts
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// Connection errors
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "no such host") ||
		strings.Contains(errMsg, "temporary failure")
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// WithRetry executes fn with exponential backoff retry for transient errors
func WithRetry[T any](ctx context.Context, operation string, fn func() (T, error)) (T, error) {
	return Retry(ctx, DefaultRetryPolicy, operation, fn)
}

// Retry is WithRetry with an explicit policy
func Retry[T any](ctx context.Context, p RetryPolicy, operation string, fn func() (T, error)) (T, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var result T
	var lastErr error
	backoff := p.InitialBackoff

	for attempt := 1; attempt <= attempts; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if !IsRetryable(lastErr) {
			return result, lastErr
		}
		if attempt < attempts {
			logger.Warn("transient failure, retrying",
				"operation", operation, "backoff", backoff, "attempt", attempt, "max_attempts", attempts, "error", lastErr)
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(backoff):
			}
			backoff = backoff * 2
			if backoff > p.MaxBackoff {
				backoff = p.MaxBackoff
			}
		}
	}
	return result, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

type retryingGenerator struct {
	next   Generator
	policy RetryPolicy
}

// Retrying wraps g so every call goes through Retry with policy
func Retrying(g Generator, policy RetryPolicy) Generator {
	return &retryingGenerator{next: g, policy: policy}
}

func (r *retryingGenerator) Generate(ctx context.Context, req Request) (string, error) {
	return Retry(ctx, r.policy, "generate", func() (string, error) {
		return r.next.Generate(ctx, req)
	})
}
