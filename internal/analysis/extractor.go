package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/tara-vision/readmegen/internal/jsonutil"
	"github.com/tara-vision/readmegen/internal/provider"
)

const (
	// MaxPromptContent caps the file content sent in a whole-file prompt
	MaxPromptContent = 3000

	extractionTemperature = 0.1
)

type keyInfo struct {
	Dependencies []string `json:"dependencies"`
	Scripts      []string `json:"scripts"`
	EntryPoints  []string `json:"entryPoints"`
	Features     []string `json:"features"`
	Description  string   `json:"description" validate:"max=2000"`
}

type fileResponse struct {
	FileType   string  `json:"fileType" validate:"max=64"`
	KeyInfo    keyInfo `json:"keyInfo"`
	Importance int     `json:"importance"`
}

// LLMExtractor implements Extractor with a provider.Generator
type LLMExtractor struct {
	gen      provider.Generator
	validate *validator.Validate
}

// NewLLMExtractor creates an extractor that prompts gen
func NewLLMExtractor(gen provider.Generator) *LLMExtractor {
	return &LLMExtractor{gen: gen, validate: validator.New()}
}

// ExtractFile asks for the key facts of a whole file
func (e *LLMExtractor) ExtractFile(ctx context.Context, path, content string) (Extraction, error) {
	raw, err := e.gen.Generate(ctx, provider.Request{
		Prompt:      FilePrompt(path, content),
		Temperature: extractionTemperature,
		JSON:        true,
	})
	if err != nil {
		return Extraction{}, err
	}

	resp, err := jsonutil.Decode[fileResponse](raw)
	if err != nil {
		return Extraction{}, fmt.Errorf("parse file analysis: %w", err)
	}
	if err := e.validate.Struct(resp); err != nil {
		return Extraction{}, fmt.Errorf("invalid file analysis: %w", err)
	}

	return Extraction{
		FileType:     strings.TrimSpace(resp.FileType),
		Dependencies: resp.KeyInfo.Dependencies,
		Scripts:      resp.KeyInfo.Scripts,
		EntryPoints:  resp.KeyInfo.EntryPoints,
		Features:     resp.KeyInfo.Features,
		Description:  strings.TrimSpace(resp.KeyInfo.Description),
		Importance:   importanceOf(resp.Importance),
	}, nil
}

// importanceOf clamps a reported importance into 1..10; 0 means none was given
func importanceOf(v int) int {
	if v == 0 {
		return 0
	}
	return clampImportance(v)
}

// ExtractChunk asks for the key facts of one chunk of a file. index is zero-based.
func (e *LLMExtractor) ExtractChunk(ctx context.Context, path, chunk string, index, total int) (Extraction, error) {
	raw, err := e.gen.Generate(ctx, provider.Request{
		Prompt:      ChunkPrompt(path, chunk, index, total),
		Temperature: extractionTemperature,
		JSON:        true,
	})
	if err != nil {
		return Extraction{}, err
	}

	resp, err := jsonutil.Decode[keyInfo](raw)
	if err != nil {
		return Extraction{}, fmt.Errorf("parse chunk %d/%d analysis: %w", index+1, total, err)
	}
	if err := e.validate.Struct(resp); err != nil {
		return Extraction{}, fmt.Errorf("invalid chunk %d/%d analysis: %w", index+1, total, err)
	}

	return Extraction{
		Dependencies: resp.Dependencies,
		Scripts:      resp.Scripts,
		EntryPoints:  resp.EntryPoints,
		Features:     resp.Features,
		Description:  strings.TrimSpace(resp.Description),
	}, nil
}

// FilePrompt builds the whole-file extraction prompt. Content beyond
// MaxPromptContent bytes is cut and marked with "...".
func FilePrompt(path, content string) string {
	if len(content) > MaxPromptContent {
		cut := MaxPromptContent
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut] + "..."
	}

	var b strings.Builder
	b.WriteString("Analyze this file and extract key information:\n\n")
	fmt.Fprintf(&b, "File: %s\nContent:\n%s\n\n", path, content)
	b.WriteString(`Extract and return as JSON:
{
    "fileType": "config|source|documentation|build|other",
    "keyInfo": {
        "dependencies": ["list of dependencies"],
        "scripts": ["list of scripts/commands"],
        "entryPoints": ["main files"],
        "features": ["key features mentioned"],
        "description": "brief description"
    },
    "importance": 1-10
}
`)
	return b.String()
}

// ChunkPrompt builds the prompt for chunk index (zero-based) of total
func ChunkPrompt(path, chunk string, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this chunk (%d/%d) of file: %s\n\n", index+1, total, path)
	fmt.Fprintf(&b, "Content:\n%s\n\n", chunk)
	b.WriteString(`Extract key information as JSON:
{
    "dependencies": ["dependencies found"],
    "scripts": ["scripts/commands found"],
    "entryPoints": ["entry points found"],
    "features": ["features mentioned"],
    "description": "brief description of this chunk"
}
`)
	return b.String()
}
