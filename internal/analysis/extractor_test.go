package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tara-vision/readmegen/internal/provider"
)

func replying(reply string, seen *provider.Request) provider.Generator {
	return provider.GeneratorFunc(func(_ context.Context, req provider.Request) (string, error) {
		if seen != nil {
			*seen = req
		}
		return reply, nil
	})
}

func TestExtractFileParsesFencedResponse(t *testing.T) {
	var req provider.Request
	reply := "Here you go:\n```json\n" + `{
  "fileType": "config",
  "keyInfo": {
    "dependencies": ["react", "next"],
    "scripts": ["npm run dev"],
    "entryPoints": ["pages/index.js"],
    "features": ["SSR"],
    "description": "Node manifest"
  },
  "importance": 9
}` + "\n```"

	ex, err := NewLLMExtractor(replying(reply, &req)).ExtractFile(context.Background(), "package.json", `{"name":"web"}`)
	require.NoError(t, err)

	assert.Equal(t, "config", ex.FileType)
	assert.Equal(t, []string{"react", "next"}, ex.Dependencies)
	assert.Equal(t, []string{"npm run dev"}, ex.Scripts)
	assert.Equal(t, []string{"pages/index.js"}, ex.EntryPoints)
	assert.Equal(t, []string{"SSR"}, ex.Features)
	assert.Equal(t, "Node manifest", ex.Description)
	assert.Equal(t, 9, ex.Importance)

	assert.InDelta(t, 0.1, req.Temperature, 0.0001)
	assert.True(t, req.JSON)
	assert.Contains(t, req.Prompt, "File: package.json")
}

func TestExtractFileClampsImportance(t *testing.T) {
	tests := []struct {
		reply string
		want  int
	}{
		{`{"fileType":"x","keyInfo":{"dependencies":["cobra"]},"importance":42}`, 10},
		{`{"fileType":"x","keyInfo":{"dependencies":["cobra"]},"importance":-3}`, 1},
		{`{"fileType":"x","keyInfo":{"dependencies":["cobra"]}}`, 0},
	}
	for _, tt := range tests {
		ex, err := NewLLMExtractor(replying(tt.reply, nil)).ExtractFile(context.Background(), "a.go", "package a")
		require.NoError(t, err)
		assert.Equal(t, tt.want, ex.Importance)
		assert.Equal(t, []string{"cobra"}, ex.Dependencies)
	}
}

func TestExtractFileUnparseable(t *testing.T) {
	_, err := NewLLMExtractor(replying("I cannot help with that.", nil)).
		ExtractFile(context.Background(), "a.go", "package a")
	assert.Error(t, err)
}

func TestExtractFilePropagatesGeneratorError(t *testing.T) {
	boom := errors.New("503")
	gen := provider.GeneratorFunc(func(context.Context, provider.Request) (string, error) { return "", boom })
	_, err := NewLLMExtractor(gen).ExtractFile(context.Background(), "a.go", "package a")
	assert.ErrorIs(t, err, boom)
}

func TestExtractChunk(t *testing.T) {
	var req provider.Request
	ex, err := NewLLMExtractor(replying(`{"dependencies":["serde"],"scripts":[],"entryPoints":[],"features":["async io"],"description":"part"}`, &req)).
		ExtractChunk(context.Background(), "src/lib.rs", "use serde;", 1, 4)
	require.NoError(t, err)

	assert.Equal(t, []string{"serde"}, ex.Dependencies)
	assert.Equal(t, []string{"async io"}, ex.Features)
	assert.Zero(t, ex.Importance)
	assert.True(t, strings.HasPrefix(req.Prompt, "Analyze this chunk (2/4) of file: src/lib.rs"))
}

func TestFilePromptCapsContent(t *testing.T) {
	content := strings.Repeat("a", MaxPromptContent+500)
	prompt := FilePrompt("big.txt", content)

	assert.Contains(t, prompt, strings.Repeat("a", MaxPromptContent)+"...")
	assert.NotContains(t, prompt, strings.Repeat("a", MaxPromptContent+1))

	short := FilePrompt("small.txt", "tiny")
	assert.Contains(t, short, "Content:\ntiny\n")
	assert.NotContains(t, short, "tiny...")
}

func TestFilePromptCutsOnRuneBoundary(t *testing.T) {
	// "é" is two bytes, so MaxPromptContent falls inside a rune
	content := "a" + strings.Repeat("é", MaxPromptContent)
	prompt := FilePrompt("accents.txt", content)

	body := prompt[strings.Index(prompt, "Content:\n")+len("Content:\n"):]
	body = body[:strings.Index(body, "...")]
	assert.True(t, utf8.ValidString(body))
	assert.Equal(t, "a"+strings.Repeat("é", (MaxPromptContent-2)/2), body)
}
