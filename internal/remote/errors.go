package remote

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/github"
)

var (
	// ErrNotFound reports a repository, branch or path that does not exist or is not visible
	ErrNotFound = errors.New("not found")

	// ErrRateLimited reports an exhausted API quota
	ErrRateLimited = errors.New("rate limited")
)

// RateLimitError carries the wait hint of a rate-limited response.
// It matches ErrRateLimited with errors.Is.
type RateLimitError struct {
	Reset      time.Time     // zero when unknown
	RetryAfter time.Duration // zero when unknown
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: %s (retry in %s)", e.Message, e.RetryAfter.Round(time.Second))
	}
	return fmt.Sprintf("rate limited: %s", e.Message)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// translateError maps go-github errors onto the package error taxonomy
func (c *Client) translateError(err error, what string) error {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		out := &RateLimitError{Reset: rle.Rate.Reset.Time, Message: rle.Message}
		if !out.Reset.IsZero() {
			out.RetryAfter = out.Reset.Sub(c.now())
			if out.RetryAfter < 0 {
				out.RetryAfter = 0
			}
		}
		return fmt.Errorf("%s: %w", what, out)
	}

	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		out := &RateLimitError{Message: abuse.Message}
		if abuse.RetryAfter != nil {
			out.RetryAfter = *abuse.RetryAfter
			out.Reset = c.now().Add(out.RetryAfter)
		}
		return fmt.Errorf("%s: %w", what, out)
	}

	var resp *github.ErrorResponse
	if errors.As(err, &resp) && resp.Response != nil {
		switch resp.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", what, ErrNotFound)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w", what, &RateLimitError{Message: resp.Message})
		}
	}

	return fmt.Errorf("%s: %w", what, err)
}
