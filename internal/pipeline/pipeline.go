// Package pipeline runs one README generation: fetch the repository, select
// and analyze a bounded set of files, summarize, and write the README.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tara-vision/readmegen/internal/analysis"
	repoctx "github.com/tara-vision/readmegen/internal/context"
	"github.com/tara-vision/readmegen/internal/readme"
	"github.com/tara-vision/readmegen/internal/remote"
	"github.com/tara-vision/readmegen/internal/strategy"
	"github.com/tara-vision/readmegen/internal/summary"
)

// Stage is a step of a run
type Stage string

const (
	StageFetching    Stage = "fetching"
	StageSelecting   Stage = "selecting"
	StageAnalyzing   Stage = "analyzing"
	StageSummarizing Stage = "summarizing"
	StageGenerating  Stage = "generating"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// Observer is told about every stage transition
type Observer interface {
	OnStage(stage Stage, detail string)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(stage Stage, detail string)

// OnStage calls f
func (f ObserverFunc) OnStage(stage Stage, detail string) { f(stage, detail) }

// Repository reads a remote repository
type Repository interface {
	GetRepository(ctx context.Context, owner, name string) (*remote.RepoMetadata, error)
	GetRepositoryTree(ctx context.Context, owner, name, branch string) ([]remote.TreeEntry, error)
	GetMultipleFiles(ctx context.Context, owner, name string, paths []string) map[string]string
}

// BatchAnalyzer analyzes the prioritized files
type BatchAnalyzer interface {
	AnalyzeAll(ctx context.Context, files []repoctx.FileAnalysis, strat strategy.Strategy) []analysis.Signal
}

// Summarizer builds the repository summary
type Summarizer interface {
	Summarize(ctx context.Context, meta *remote.RepoMetadata, signals []analysis.Signal, tree []remote.TreeEntry, files map[string]string) summary.Result
}

// ReadmeGenerator writes the README
type ReadmeGenerator interface {
	Generate(ctx context.Context, s summary.RepositorySummary, c readme.Customization, meta *remote.RepoMetadata) (readme.Output, error)
}

// Request names the repository to document
type Request struct {
	Owner         string
	Name          string
	Branch        string // empty uses the default branch
	Customization readme.Customization
}

// FullName returns owner/name
func (r Request) FullName() string {
	return r.Owner + "/" + r.Name
}

// Result is everything a run produced
type Result struct {
	ID          string                  `json:"id" yaml:"id"`
	Repository  string                  `json:"repository" yaml:"repository"`
	Branch      string                  `json:"branch,omitempty" yaml:"branch,omitempty"`
	Metadata    *remote.RepoMetadata    `json:"metadata" yaml:"metadata"`
	Tree        []remote.TreeEntry      `json:"-" yaml:"-"`
	TotalFiles  int                     `json:"total_files" yaml:"total_files"`
	TotalBytes  int64                   `json:"total_bytes" yaml:"total_bytes"`
	Files       map[string]string       `json:"-" yaml:"-"`
	Fetched     []string                `json:"fetched" yaml:"fetched"`
	Strategy    strategy.Strategy       `json:"strategy" yaml:"strategy"`
	Tier        strategy.Tier           `json:"tier" yaml:"tier"`
	Prioritized []string                `json:"prioritized" yaml:"prioritized"`
	Signals     []analysis.Signal       `json:"signals" yaml:"signals"`
	Summary     summary.Result          `json:"summary" yaml:"summary"`
	Readme      string                  `json:"readme" yaml:"readme"`
	Source      readme.Source           `json:"readme_source" yaml:"readme_source"`
	ReadmeErr   error                   `json:"-" yaml:"-"`
	Timings     map[Stage]time.Duration `json:"timings" yaml:"timings"`
	StartedAt   time.Time               `json:"started_at" yaml:"started_at"`
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithObserver reports stage transitions to o
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithFetchLimit caps how many files are fetched per run
func WithFetchLimit(n int) Option {
	return func(p *Pipeline) { p.fetchLimit = n }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// Pipeline wires the stages of a run together
type Pipeline struct {
	repo       Repository
	analyzer   BatchAnalyzer
	summarizer Summarizer
	generator  ReadmeGenerator

	observer   Observer
	logger     *slog.Logger
	fetchLimit int
	now        func() time.Time
}

// New creates a Pipeline
func New(repo Repository, analyzer BatchAnalyzer, summarizer Summarizer, generator ReadmeGenerator, opts ...Option) *Pipeline {
	p := &Pipeline{
		repo:       repo,
		analyzer:   analyzer,
		summarizer: summarizer,
		generator:  generator,
		logger:     slog.Default(),
		fetchLimit: remote.DefaultImportantLimit,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every stage for req. Only metadata and tree failures are
// returned as errors; later stages degrade and the run still completes.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{
		ID:         uuid.New().String(),
		Repository: req.FullName(),
		Branch:     req.Branch,
		StartedAt:  p.now(),
		Timings:    map[Stage]time.Duration{},
	}
	logger := p.logger.With("run", res.ID, "repo", res.Repository)

	if err := p.fetch(ctx, req, res, logger); err != nil {
		p.stage(StageFailed, err.Error())
		logger.Error("run failed", "error", err)
		return nil, err
	}

	files := p.selectFiles(res, logger)

	start := p.now()
	p.stage(StageAnalyzing, fmt.Sprintf("%d files, %d at a time", len(files), res.Strategy.MaxConcurrent))
	res.Signals = p.analyzer.AnalyzeAll(ctx, files, res.Strategy)
	if res.Signals == nil {
		res.Signals = []analysis.Signal{}
	}
	res.Timings[StageAnalyzing] = p.now().Sub(start)
	logger.Info("analysis finished", "signals", len(res.Signals), "files", len(files))

	start = p.now()
	p.stage(StageSummarizing, fmt.Sprintf("%d signals", len(res.Signals)))
	res.Summary = p.summarizer.Summarize(ctx, res.Metadata, res.Signals, res.Tree, res.Files)
	res.Timings[StageSummarizing] = p.now().Sub(start)
	if res.Summary.Err != nil {
		logger.Warn("summary enrichment failed, using heuristics", "error", res.Summary.Err)
	}

	start = p.now()
	p.stage(StageGenerating, string(res.Summary.Summary.ProjectType))
	out, err := p.generator.Generate(ctx, res.Summary.Summary, req.Customization, res.Metadata)
	res.Timings[StageGenerating] = p.now().Sub(start)
	if err != nil {
		// the template itself failed; keep the run and report an empty README
		logger.Error("README rendering failed", "error", err)
		res.ReadmeErr = err
	} else {
		res.Readme = out.Markdown
		res.Source = out.Source
		res.ReadmeErr = out.Err
	}

	p.stage(StageDone, res.Repository)
	return res, nil
}

func (p *Pipeline) fetch(ctx context.Context, req Request, res *Result, logger *slog.Logger) error {
	start := p.now()
	defer func() { res.Timings[StageFetching] = p.now().Sub(start) }()

	p.stage(StageFetching, "repository metadata")
	meta, err := p.repo.GetRepository(ctx, req.Owner, req.Name)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", req.FullName(), err)
	}
	res.Metadata = meta

	branch := req.Branch
	if branch == "" {
		branch = meta.DefaultBranch
	}
	res.Branch = branch

	p.stage(StageFetching, "file tree")
	tree, err := p.repo.GetRepositoryTree(ctx, req.Owner, req.Name, branch)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", req.FullName(), err)
	}
	res.Tree = tree
	res.TotalFiles, res.TotalBytes = remote.Aggregate(tree)

	paths := remote.SelectImportant(tree, p.fetchLimit)
	p.stage(StageFetching, fmt.Sprintf("%d of %d files", len(paths), res.TotalFiles))
	res.Files = p.repo.GetMultipleFiles(ctx, req.Owner, req.Name, paths)
	if res.Files == nil {
		res.Files = map[string]string{}
	}
	res.Fetched = make([]string, 0, len(res.Files))
	for path := range res.Files {
		res.Fetched = append(res.Fetched, path)
	}
	sort.Strings(res.Fetched)

	logger.Info("fetched repository", "branch", branch, "tree_entries", len(tree), "selected", len(paths), "fetched", len(res.Files))
	return nil
}

func (p *Pipeline) selectFiles(res *Result, logger *slog.Logger) []repoctx.FileAnalysis {
	start := p.now()
	count, size := candidates(res.Files)
	res.Strategy = strategy.Select(count, size)
	res.Tier = res.Strategy.Tier()
	p.stage(StageSelecting, string(res.Tier))

	files := repoctx.Prioritize(res.Files, res.Strategy)
	res.Prioritized = make([]string, len(files))
	for i, f := range files {
		res.Prioritized[i] = f.Path
	}
	res.Timings[StageSelecting] = p.now().Sub(start)

	logger.Info("selected files", "strategy", res.Strategy.String(), "prioritized", len(files))
	return files
}

// candidates counts the fetched files with content and their total size.
// The strategy is sized from these, not from the whole tree.
func candidates(files map[string]string) (count int, size int64) {
	for _, content := range files {
		if content == "" {
			continue
		}
		count++
		size += int64(len(content))
	}
	return count, size
}

func (p *Pipeline) stage(s Stage, detail string) {
	p.logger.Debug("stage", "stage", s, "detail", detail)
	if p.observer != nil {
		p.observer.OnStage(s, detail)
	}
}
