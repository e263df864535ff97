package remote

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer gates outgoing requests. Wait blocks until the next request may go out.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer lets one request through per interval
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer creates a pacer spacing requests by interval.
// A non-positive interval disables pacing.
func NewIntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return NoPacer{}
	}
	return &IntervalPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the interval since the previous request has elapsed
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NoPacer never blocks
type NoPacer struct{}

// Wait returns immediately unless ctx is done
func (NoPacer) Wait(ctx context.Context) error {
	return ctx.Err()
}
