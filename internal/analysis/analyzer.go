package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	repoctx "github.com/tara-vision/readmegen/internal/context"
	"github.com/tara-vision/readmegen/internal/strategy"
)

// ErrNoSignal is returned when no extraction for a file succeeded
var ErrNoSignal = errors.New("no signal extracted")

// Extractor asks a generation service for the structured facts of a file
type Extractor interface {
	ExtractFile(ctx context.Context, path, content string) (Extraction, error)
	ExtractChunk(ctx context.Context, path, chunk string, index, total int) (Extraction, error)
}

// Analyzer turns one classified file into a Signal
type Analyzer struct {
	extractor Extractor
	cache     Cache
	logger    *slog.Logger
}

// AnalyzerOption configures an Analyzer
type AnalyzerOption func(*Analyzer)

// WithCache replaces the default LRU cache
func WithCache(c Cache) AnalyzerOption {
	return func(a *Analyzer) { a.cache = c }
}

// WithLogger sets the analyzer's logger
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an Analyzer. Without WithCache it memoizes into a
// fresh LRUCache of DefaultCacheSize entries.
func NewAnalyzer(extractor Extractor, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{extractor: extractor, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		c, _ := NewLRUCache(DefaultCacheSize)
		a.cache = c
	}
	return a
}

// Analyze returns the signal for file. Cached signals are returned without
// calling the extractor. Files larger than strat.MaxChunkSize are split when
// strat.UseChunking is set; their chunks are extracted concurrently and the
// list fields merged. When nothing could be extracted the classification-only
// signal is returned together with an error wrapping ErrNoSignal, and nothing
// is cached.
func (a *Analyzer) Analyze(ctx context.Context, file repoctx.FileAnalysis, strat strategy.Strategy) (Signal, error) {
	key := CacheKey(file.Path, len(file.Content))
	if s, ok := a.cache.Get(key); ok {
		a.logger.Debug("using cached analysis", "path", file.Path)
		return s, nil
	}

	var (
		signal Signal
		err    error
	)
	if file = Split(file, strat); len(file.Chunks) > 1 {
		signal, err = a.analyzeChunked(ctx, file, strat)
	} else {
		signal, err = a.analyzeWhole(ctx, file)
	}
	if err != nil {
		return signal, err
	}

	a.cache.Add(key, signal)
	return signal, nil
}

func (a *Analyzer) analyzeWhole(ctx context.Context, file repoctx.FileAnalysis) (Signal, error) {
	signal := classified(file)

	ex, err := a.extractor.ExtractFile(ctx, file.Path, file.Content)
	if err != nil {
		a.logger.Warn("file analysis failed", "path", file.Path, "error", err)
		return signal, fmt.Errorf("analyze %s: %w: %w", file.Path, ErrNoSignal, err)
	}

	newMerger().merge(&signal, ex)
	if ex.FileType != "" {
		signal.FileType = ex.FileType
	}
	if ex.Description != "" {
		signal.Description = ex.Description
	}
	if ex.Importance > 0 {
		signal.Importance = clampImportance(ex.Importance)
	}
	return signal, nil
}

// Split returns file with Chunks set when strat calls for chunking and the
// content is larger than strat.MaxChunkSize. Otherwise Chunks is nil.
func Split(file repoctx.FileAnalysis, strat strategy.Strategy) repoctx.FileAnalysis {
	file.Chunks = nil
	if strat.UseChunking && len(file.Content) > strat.MaxChunkSize {
		file.Chunks = Chunk(file.Content, strat.MaxChunkSize)
	}
	return file
}

func (a *Analyzer) analyzeChunked(ctx context.Context, file repoctx.FileAnalysis, strat strategy.Strategy) (Signal, error) {
	chunks := file.Chunks
	a.logger.Debug("analyzing in chunks", "path", file.Path, "chunks", len(chunks), "max_chunk_size", strat.MaxChunkSize)

	results := make([]*Extraction, len(chunks))

	var g errgroup.Group
	if strat.MaxConcurrent > 0 {
		g.SetLimit(strat.MaxConcurrent)
	}
	for i, chunk := range chunks {
		g.Go(func() error {
			ex, err := a.extractor.ExtractChunk(ctx, file.Path, chunk, i, len(chunks))
			if err != nil {
				a.logger.Warn("chunk analysis failed", "path", file.Path, "chunk", i+1, "total", len(chunks), "error", err)
				return nil
			}
			results[i] = &ex
			return nil
		})
	}
	_ = g.Wait()

	signal := classified(file)
	signal.Chunks = len(chunks)

	m := newMerger()
	extracted := 0
	for _, ex := range results {
		if ex == nil {
			continue
		}
		extracted++
		m.merge(&signal, *ex)
	}
	if extracted == 0 {
		return signal, fmt.Errorf("analyze %s: all %d chunks failed: %w", file.Path, len(chunks), ErrNoSignal)
	}
	return signal, nil
}
