package readme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tara-vision/readmegen/internal/provider"
	"github.com/tara-vision/readmegen/internal/remote"
	"github.com/tara-vision/readmegen/internal/summary"
)

const generationTemperature = 0.3

// Source tells where README text came from
type Source string

const (
	SourceGenerated Source = "generated"
	SourceTemplate  Source = "template"
)

// Output is the README of a run. Err is the generation failure when Source
// is SourceTemplate.
type Output struct {
	Markdown string
	Source   Source
	Err      error
}

// ErrEmptyReadme is reported when the service returned no usable markdown
var ErrEmptyReadme = errors.New("generation service returned an empty README")

// Generator writes README markdown
type Generator struct {
	gen    provider.Generator
	logger *slog.Logger
}

// NewGenerator creates a Generator. A nil gen always renders the template.
func NewGenerator(gen provider.Generator, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{gen: gen, logger: logger}
}

// Generate asks the generation service for the README and falls back to
// Render when the call fails or returns nothing
func (g *Generator) Generate(ctx context.Context, s summary.RepositorySummary, c Customization, meta *remote.RepoMetadata) (Output, error) {
	md, err := g.generate(ctx, s, c, meta)
	if err == nil {
		return Output{Markdown: md, Source: SourceGenerated}, nil
	}
	g.logger.Warn("README generation failed, rendering template", "error", err)

	rendered, rerr := Render(s, c, meta)
	if rerr != nil {
		return Output{}, rerr
	}
	return Output{Markdown: rendered, Source: SourceTemplate, Err: err}, nil
}

func (g *Generator) generate(ctx context.Context, s summary.RepositorySummary, c Customization, meta *remote.RepoMetadata) (string, error) {
	if g.gen == nil {
		return "", fmt.Errorf("no generation service configured")
	}
	prompt, err := Prompt(s, c, meta)
	if err != nil {
		return "", err
	}

	raw, err := g.gen.Generate(ctx, provider.Request{Prompt: prompt, Temperature: generationTemperature})
	if err != nil {
		return "", fmt.Errorf("generate readme: %w", err)
	}
	md := StripFences(raw)
	if md == "" {
		return "", ErrEmptyReadme
	}
	return md + "\n", nil
}

// Prompt builds the README generation request
func Prompt(s summary.RepositorySummary, c Customization, meta *remote.RepoMetadata) (string, error) {
	if meta == nil {
		meta = &remote.RepoMetadata{}
	}
	analysisJSON, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	customJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode customization: %w", err)
	}

	var b strings.Builder
	b.WriteString("Generate a professional README.md for this project based on the AI analysis and user customization preferences.\n\n")
	fmt.Fprintf(&b, "AI Analysis:\n%s\n\n", analysisJSON)
	b.WriteString("Repository Info:\n")
	fmt.Fprintf(&b, "- Name: %s\n- Description: %s\n- Language: %s\n\n", meta.Name, meta.Description, meta.Language)
	fmt.Fprintf(&b, "User Customization:\n%s\n\n", customJSON)
	fmt.Fprintf(&b, `Generate a complete README.md that:
1. Uses the user's custom title and description if provided
2. Includes appropriate badges and tags
3. Follows the user's section order preferences
4. Incorporates the AI analysis intelligently
5. Uses proper markdown formatting
6. Is professional and comprehensive
7. Uses correct installation commands for %s

Return only the markdown content, no JSON wrapper or code blocks.
`, s.MainLanguage)
	return b.String(), nil
}

var wrappingFence = regexp.MustCompile("(?s)^```(?:markdown|md)?[ \t]*\n(.*?)\n?```$")

// StripFences removes a code fence wrapped around the whole response
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if m := wrappingFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}
