package analysis

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	repoctx "github.com/tara-vision/readmegen/internal/context"
	"github.com/tara-vision/readmegen/internal/strategy"
)

// DefaultBatchDelay separates consecutive batches
const DefaultBatchDelay = time.Second

// FileAnalyzer analyzes one file; *Analyzer implements it
type FileAnalyzer interface {
	Analyze(ctx context.Context, file repoctx.FileAnalysis, strat strategy.Strategy) (Signal, error)
}

// Scheduler runs a FileAnalyzer over many files in paced, concurrent batches
type Scheduler struct {
	analyzer FileAnalyzer
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	progress func(done, total int)
	logger   *slog.Logger
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithBatchDelay sets the pause between batches
func WithBatchDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.delay = d }
}

// WithSleep replaces the pause implementation
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) SchedulerOption {
	return func(s *Scheduler) { s.sleep = sleep }
}

// WithProgress is called after every batch with the number of files processed so far
func WithProgress(fn func(done, total int)) SchedulerOption {
	return func(s *Scheduler) { s.progress = fn }
}

// WithSchedulerLogger sets the scheduler's logger
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// NewScheduler creates a Scheduler around analyzer
func NewScheduler(analyzer FileAnalyzer, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		analyzer: analyzer,
		delay:    DefaultBatchDelay,
		sleep:    sleepContext,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeAll analyzes files in batches of strat.MaxConcurrent. Files inside a
// batch run concurrently; batches run one after another with the configured
// delay between them. Failed files are logged and dropped. The result keeps
// input order. On cancellation the signals gathered so far are returned.
func (s *Scheduler) AnalyzeAll(ctx context.Context, files []repoctx.FileAnalysis, strat strategy.Strategy) []Signal {
	batchSize := strat.MaxConcurrent
	if batchSize < 1 {
		batchSize = 1
	}

	signals := make([]Signal, 0, len(files))
	for start := 0; start < len(files); start += batchSize {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("analysis cancelled", "analyzed", start, "total", len(files), "error", err)
			break
		}

		end := min(start+batchSize, len(files))
		batch := files[start:end]
		results := make([]Signal, len(batch))
		failed := make([]bool, len(batch))

		var g errgroup.Group
		for i, file := range batch {
			g.Go(func() error {
				sig, err := s.analyzer.Analyze(ctx, file, strat)
				if err != nil {
					s.logger.Warn("dropping file from analysis", "path", file.Path, "error", err)
					failed[i] = true
					return nil
				}
				results[i] = sig
				return nil
			})
		}
		_ = g.Wait()

		for i := range batch {
			if !failed[i] {
				signals = append(signals, results[i])
			}
		}
		if s.progress != nil {
			s.progress(end, len(files))
		}
		s.logger.Debug("analysis batch done", "from", start, "to", end, "total", len(files))

		if end < len(files) && s.delay > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				s.logger.Warn("analysis cancelled", "analyzed", end, "total", len(files), "error", err)
				break
			}
		}
	}
	return signals
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
