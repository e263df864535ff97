package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/tara-vision/readmegen/internal/analysis"
	repoctx "github.com/tara-vision/readmegen/internal/context"
	"github.com/tara-vision/readmegen/internal/pipeline"
	"github.com/tara-vision/readmegen/internal/provider"
	"github.com/tara-vision/readmegen/internal/readme"
	"github.com/tara-vision/readmegen/internal/remote"
	"github.com/tara-vision/readmegen/internal/storage"
	"github.com/tara-vision/readmegen/internal/strategy"
	"github.com/tara-vision/readmegen/internal/summary"
	"github.com/tara-vision/readmegen/internal/ui"
)

// app holds everything a command needs. One app serves every run of a
// REPL session, so the analysis cache is shared between runs.
type app struct {
	cfg      Config
	fs       afero.Fs
	renderer *ui.Renderer
	store    *storage.Manager
	writer   *readme.Writer
	repo     *remote.Client
	gen      provider.Generator
	info     *provider.Info
	cache    analysis.Cache
	logger   *slog.Logger
}

func newApp(ctx context.Context, cfg Config) (*app, error) {
	a := &app{
		cfg:      cfg,
		fs:       afero.NewOsFs(),
		renderer: ui.NewRenderer(),
		logger:   slog.Default(),
	}
	a.writer = readme.NewWriter(a.fs)

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}
	if a.store, err = storage.NewManager(a.fs, workingDir); err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}

	a.repo, err = remote.New(remote.Config{
		Token:   cfg.GitHubToken,
		BaseURL: cfg.GitHubAPI,
		Pacer:   remote.NewIntervalPacer(cfg.Fetch.Delay),
		Logger:  a.logger.With("component", "remote"),
	})
	if err != nil {
		return nil, err
	}

	cache, err := analysis.NewLRUCache(cfg.Analysis.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	a.cache = cache

	if opts, ok := generationOptions(cfg); ok {
		a.gen, a.info, err = provider.New(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("connect to generation service: %w", err)
		}
	}
	return a, nil
}

// run executes the pipeline for req with terminal progress and records the run
func (a *app) run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	var spinner *ui.Spinner
	if !a.cfg.NoSpinner && isatty.IsTerminal(os.Stderr.Fd()) {
		spinner = ui.NewSpinner()
	}
	progress := ui.NewProgress(os.Stderr, spinner)

	p := pipeline.New(
		a.repo,
		a.batchAnalyzer(progress.Analyzed),
		summary.New(a.gen, a.logger.With("component", "summary")),
		readme.NewGenerator(a.gen, a.logger.With("component", "readme")),
		pipeline.WithObserver(progress),
		pipeline.WithLogger(a.logger.With("component", "pipeline")),
		pipeline.WithFetchLimit(a.cfg.Fetch.MaxFiles),
	)

	res, err := p.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := a.store.Save(newRun(res)); err != nil {
		a.logger.Warn("could not record run", "error", err)
	}
	return res, nil
}

func (a *app) batchAnalyzer(onProgress func(done, total int)) pipeline.BatchAnalyzer {
	if a.gen == nil {
		return noAnalysis{}
	}
	logger := a.logger.With("component", "analysis")
	analyzer := analysis.NewAnalyzer(analysis.NewLLMExtractor(a.gen),
		analysis.WithCache(a.cache),
		analysis.WithLogger(logger))
	return analysis.NewScheduler(analyzer,
		analysis.WithBatchDelay(a.cfg.Analysis.BatchDelay),
		analysis.WithProgress(onProgress),
		analysis.WithSchedulerLogger(logger))
}

// noAnalysis stands in for the scheduler when no generation service is configured
type noAnalysis struct{}

func (noAnalysis) AnalyzeAll(context.Context, []repoctx.FileAnalysis, strategy.Strategy) []analysis.Signal {
	return []analysis.Signal{}
}

func newRun(res *pipeline.Result) *storage.Run {
	timings := make(map[string]time.Duration, len(res.Timings))
	for stage, d := range res.Timings {
		timings[string(stage)] = d
	}
	return &storage.Run{
		ID:           res.ID,
		Repository:   res.Repository,
		Branch:       res.Branch,
		CreatedAt:    res.StartedAt,
		Metadata:     res.Metadata,
		Strategy:     res.Strategy,
		TotalFiles:   res.TotalFiles,
		Fetched:      res.Fetched,
		Analyzed:     len(res.Signals),
		Summary:      res.Summary.Summary,
		SummaryKind:  res.Summary.Kind,
		Readme:       res.Readme,
		ReadmeSource: string(res.Source),
		Timings:      timings,
	}
}
