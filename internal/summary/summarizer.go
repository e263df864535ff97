package summary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/tara-vision/readmegen/internal/analysis"
	"github.com/tara-vision/readmegen/internal/jsonutil"
	"github.com/tara-vision/readmegen/internal/provider"
	"github.com/tara-vision/readmegen/internal/remote"
)

const enrichmentTemperature = 0.2

// Summarizer builds the repository summary of a run
type Summarizer struct {
	gen      provider.Generator
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Summarizer. A nil gen skips enrichment and always falls back.
func New(gen provider.Generator, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{gen: gen, validate: validator.New(), logger: logger}
}

// Summarize detects language and project type, then asks the generation
// service for an enriched summary. Any enrichment failure yields the
// heuristic summary with Kind KindFallback and the cause in Err.
func (s *Summarizer) Summarize(ctx context.Context, meta *remote.RepoMetadata, signals []analysis.Signal, tree []remote.TreeEntry, files map[string]string) Result {
	language := DetectLanguage(tree, files)
	projectType := DetectProjectType(tree, files)
	fallback := Fallback(meta, tree, files, language, projectType)

	s.logger.Debug("detected repository traits", "language", language, "project_type", projectType, "signals", len(signals))

	enriched, err := s.enrich(ctx, PromptInput{
		Meta:        meta,
		Signals:     signals,
		TotalFiles:  len(tree),
		Language:    language,
		ProjectType: projectType,
	})
	if err != nil {
		s.logger.Warn("summary enrichment failed, using heuristics", "error", err)
		return Result{Kind: KindFallback, Summary: fallback, Err: err}
	}

	return Result{Kind: KindEnriched, Summary: completeWith(enriched, fallback)}
}

func (s *Summarizer) enrich(ctx context.Context, in PromptInput) (RepositorySummary, error) {
	if s.gen == nil {
		return RepositorySummary{}, fmt.Errorf("no generation service configured")
	}

	raw, err := s.gen.Generate(ctx, provider.Request{
		Prompt:      EnrichmentPrompt(in),
		Temperature: enrichmentTemperature,
		JSON:        true,
	})
	if err != nil {
		return RepositorySummary{}, fmt.Errorf("generate summary: %w", err)
	}

	summary, err := jsonutil.Decode[RepositorySummary](raw)
	if err != nil {
		return RepositorySummary{}, fmt.Errorf("parse summary: %w", err)
	}
	if err := s.validate.Struct(summary); err != nil {
		return RepositorySummary{}, fmt.Errorf("invalid summary: %w", err)
	}
	return summary, nil
}
