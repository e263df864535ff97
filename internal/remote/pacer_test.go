package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalPacerSpacesRequests(t *testing.T) {
	p := NewIntervalPacer(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		assert.NoError(t, p.Wait(ctx))
	}
	// first request is free, the next two wait one interval each
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestIntervalPacerHonoursContext(t *testing.T) {
	p := NewIntervalPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	assert.NoError(t, p.Wait(ctx))
	cancel()
	assert.Error(t, p.Wait(ctx))
}

func TestNonPositiveIntervalDisablesPacing(t *testing.T) {
	p := NewIntervalPacer(0)
	assert.IsType(t, NoPacer{}, p)
	assert.NoError(t, p.Wait(context.Background()))
}
