package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repoctx "github.com/tara-vision/readmegen/internal/context"
	"github.com/tara-vision/readmegen/internal/strategy"
)

type fakeFileAnalyzer struct {
	fail     map[string]bool
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeFileAnalyzer) Analyze(ctx context.Context, file repoctx.FileAnalysis, _ strategy.Strategy) (Signal, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	// Later files finish first so arrival order differs from input order
	last := int(file.Path[len(file.Path)-1] - '0')
	time.Sleep(time.Duration(10-last) * time.Millisecond)
	if f.fail[file.Path] {
		return Signal{}, errors.New("extraction failed")
	}
	return Signal{Path: file.Path}, nil
}

func makeFiles(n int) []repoctx.FileAnalysis {
	files := make([]repoctx.FileAnalysis, n)
	for i := range files {
		files[i] = repoctx.FileAnalysis{Path: fmt.Sprintf("f%d", i), Content: "x"}
	}
	return files
}

func paths(signals []Signal) []string {
	out := make([]string, len(signals))
	for i, s := range signals {
		out[i] = s.Path
	}
	return out
}

type sleepRecorder struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, d)
	return nil
}

func TestAnalyzeAllKeepsOrderAndDropsFailures(t *testing.T) {
	fa := &fakeFileAnalyzer{fail: map[string]bool{"f2": true, "f5": true}}
	rec := &sleepRecorder{}
	s := NewScheduler(fa, WithSleep(rec.sleep), WithSchedulerLogger(discardLogger()))

	strat := strategy.Strategy{MaxFiles: 10, MaxConcurrent: 3}
	signals := s.AnalyzeAll(context.Background(), makeFiles(7), strat)

	assert.Equal(t, []string{"f0", "f1", "f3", "f4", "f6"}, paths(signals))
	assert.LessOrEqual(t, fa.peak.Load(), int32(3))
}

func TestAnalyzeAllPausesBetweenBatchesOnly(t *testing.T) {
	tests := []struct {
		files, batch, wantSleeps int
	}{
		{0, 3, 0},
		{3, 3, 0},
		{4, 3, 1},
		{7, 3, 2},
		{9, 3, 2},
		{10, 3, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d files batch %d", tt.files, tt.batch), func(t *testing.T) {
			rec := &sleepRecorder{}
			s := NewScheduler(&fakeFileAnalyzer{}, WithSleep(rec.sleep), WithBatchDelay(250*time.Millisecond), WithSchedulerLogger(discardLogger()))

			s.AnalyzeAll(context.Background(), makeFiles(tt.files), strategy.Strategy{MaxConcurrent: tt.batch})
			require.Len(t, rec.calls, tt.wantSleeps)
			for _, d := range rec.calls {
				assert.Equal(t, 250*time.Millisecond, d)
			}
		})
	}
}

func TestAnalyzeAllReportsProgress(t *testing.T) {
	var reports []string
	s := NewScheduler(&fakeFileAnalyzer{},
		WithSleep(func(context.Context, time.Duration) error { return nil }),
		WithProgress(func(done, total int) { reports = append(reports, fmt.Sprintf("%d/%d", done, total)) }),
		WithSchedulerLogger(discardLogger()),
	)

	s.AnalyzeAll(context.Background(), makeFiles(5), strategy.Strategy{MaxConcurrent: 2})
	assert.Equal(t, []string{"2/5", "4/5", "5/5"}, reports)
}

func TestAnalyzeAllStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(&fakeFileAnalyzer{},
		WithSleep(func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		}),
		WithSchedulerLogger(discardLogger()),
	)

	signals := s.AnalyzeAll(ctx, makeFiles(6), strategy.Strategy{MaxConcurrent: 2})
	assert.Equal(t, []string{"f0", "f1"}, paths(signals))
}

func TestAnalyzeAllZeroConcurrencyRunsSequentially(t *testing.T) {
	fa := &fakeFileAnalyzer{}
	s := NewScheduler(fa, WithSleep(func(context.Context, time.Duration) error { return nil }), WithSchedulerLogger(discardLogger()))

	signals := s.AnalyzeAll(context.Background(), makeFiles(3), strategy.Strategy{})
	assert.Len(t, signals, 3)
	assert.Equal(t, int32(1), fa.peak.Load())
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}
