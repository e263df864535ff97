package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tara-vision/readmegen/internal/pipeline"
	"github.com/tara-vision/readmegen/internal/provider"
	"github.com/tara-vision/readmegen/internal/readme"
	"github.com/tara-vision/readmegen/internal/storage"
	"github.com/tara-vision/readmegen/internal/strategy"
	"github.com/tara-vision/readmegen/internal/summary"
)

func TestStageMessage(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, r.StageMessage(pipeline.StageAnalyzing, "3 files"), "Analyzing")
	assert.Contains(t, r.StageMessage(pipeline.StageAnalyzing, "3 files"), "(3 files)")
	assert.Contains(t, r.StageMessage(pipeline.StageDone, ""), IconSuccess)
	assert.Contains(t, r.StageMessage(pipeline.StageFailed, "not found"), IconError)
	assert.Contains(t, r.StageMessage(pipeline.Stage("custom"), ""), "custom")
}

func TestRunSummary(t *testing.T) {
	res := &pipeline.Result{
		ID:         "run-1",
		Repository: "acme/tool",
		Branch:     "main",
		TotalFiles: 12,
		TotalBytes: 4096,
		Fetched:    []string{"go.mod", "main.go"},
		Strategy:   strategy.Select(12, 4096),
		Summary: summary.Result{
			Kind:    summary.KindFallback,
			Summary: summary.RepositorySummary{MainLanguage: "Go", ProjectType: summary.ProjectCLITool},
			Err:     errors.New("quota"),
		},
		Source:  readme.SourceTemplate,
		Timings: map[pipeline.Stage]time.Duration{pipeline.StageFetching: 1500 * time.Millisecond},
	}

	out := NewRenderer().RunSummary(res)
	for _, want := range []string{"acme/tool", "run-1", "12 files, 4.0 KiB", "small", "0 of 2 fetched files", "Go", "cli-tool", "fallback", "template", "1.5s", "enrichment failed: quota"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "generation failed")
}

func TestHistoryTable(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, r.HistoryTable(nil), "No runs recorded yet.")

	out := r.HistoryTable([]storage.RunMetadata{{
		ID: "0123456789abcdef", Repository: "acme/tool", ProjectType: "library", Language: "Rust",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "89abcdef")
	assert.Contains(t, out, "acme/tool")
	assert.Contains(t, out, "Rust")
}

func TestProviderMessage(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, r.ProviderMessage(nil), "using templates")
	assert.Contains(t, r.ProviderMessage(&provider.Info{Name: "Ollama", Model: "llama3"}), "Connected to Ollama (llama3)")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "10.0 MiB", formatBytes(10<<20))
}

func TestProgressWithoutSpinner(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, nil)
	p.OnStage(pipeline.StageFetching, "file tree")
	p.Analyzed(2, 4)
	p.OnStage(pipeline.StageDone, "acme/tool")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Fetching")
	assert.Contains(t, lines[1], "2/4 files")
	assert.Contains(t, lines[2], "Done")
}

func TestProgressWithSpinner(t *testing.T) {
	var frames, out bytes.Buffer
	p := NewProgress(&out, NewSpinnerTo(&frames, SpinnerFrames.Line))
	p.OnStage(pipeline.StageFetching, "metadata")
	p.OnStage(pipeline.StageFetching, "tree")
	p.OnStage(pipeline.StageSelecting, "small")
	p.OnStage(pipeline.StageDone, "")

	assert.False(t, p.spinner.IsRunning())
	assert.Equal(t, 3, strings.Count(out.String(), "\n"), "one line per finished stage")
	assert.Contains(t, out.String(), "Done")
	assert.Contains(t, out.String(), "Fetching")
	assert.Contains(t, out.String(), "Selecting files")
}
